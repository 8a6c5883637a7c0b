// Package api is the typed HTTP client for the study-assistant backend. It
// owns no state: every method is a single-shot request/response call, and
// every failure surfaces as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is used when no server address is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client issues typed requests against the backend HTTP contract.
type Client struct {
	baseURL string
	hc      *http.Client
	log     *logrus.Logger
}

// New creates a Client for the given base URL. A zero timeout means no
// client-enforced timeout; requests then settle when the transport does.
func New(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Upload posts a document as multipart form data. The caller must have
// pre-validated the file extension; the backend enforces it regardless.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, &Error{Op: OpUpload, Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &Error{Op: OpUpload, Err: fmt.Errorf("read file: %w", err)}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{Op: OpUpload, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &body)
	if err != nil {
		return nil, &Error{Op: OpUpload, Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out UploadResult
	if err := c.send(OpUpload, req, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

type chatRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// SendMessage posts a question, threading the conversation id when one is
// set. The returned ConversationID must become the session's identifier.
func (c *Client) SendMessage(ctx context.Context, question, conversationID string) (*ChatResponse, error) {
	var out ChatResponse
	err := c.postJSON(ctx, OpChat, "/api/chat", chatRequest{
		Question:       question,
		ConversationID: conversationID,
	}, &out, nil)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatHistory fetches the backend-stored transcript for a conversation.
func (c *Client) ChatHistory(ctx context.Context, conversationID string) ([]TranscriptMessage, error) {
	var out struct {
		Messages []TranscriptMessage `json:"messages"`
	}
	q := url.Values{"conversation_id": {conversationID}}
	if err := c.getJSON(ctx, OpChatHistory, "/api/chat/history", q, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// GenerateQuiz asks the backend for a new quiz. The response payload is
// validated against the quiz schema before decoding.
func (c *Client) GenerateQuiz(ctx context.Context, req GenerateQuizRequest) (*Quiz, error) {
	var out Quiz
	if err := c.postJSON(ctx, OpQuizGenerate, "/api/quiz/generate", req, &out, quizSchema); err != nil {
		return nil, err
	}
	return &out, nil
}

type submitRequest struct {
	QuizID  string         `json:"quiz_id"`
	Answers map[int]string `json:"answers"`
}

// SubmitQuiz posts a complete answer set for grading. Completeness is the
// caller's responsibility; this method only transports.
func (c *Client) SubmitQuiz(ctx context.Context, quizID string, answers map[int]string) (*QuizResult, error) {
	var out QuizResult
	err := c.postJSON(ctx, OpQuizSubmit, "/api/quiz/submit", submitRequest{
		QuizID:  quizID,
		Answers: answers,
	}, &out, quizResultSchema)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// QuizHistory fetches the backend quiz log, most recent last as sent.
func (c *Client) QuizHistory(ctx context.Context) ([]QuizHistoryEntry, error) {
	var out struct {
		Quizzes []QuizHistoryEntry `json:"quizzes"`
	}
	if err := c.getJSON(ctx, OpQuizHistory, "/api/quiz/history", nil, &out); err != nil {
		return nil, err
	}
	return out.Quizzes, nil
}

// Progress fetches the full progress snapshot.
func (c *Client) Progress(ctx context.Context) (*ProgressSnapshot, error) {
	var out ProgressSnapshot
	if err := c.getJSON(ctx, OpProgress, "/api/progress", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WeakAreas fetches just the weak-areas subset of the snapshot.
func (c *Client) WeakAreas(ctx context.Context) ([]WeakArea, error) {
	var out struct {
		WeakAreas []WeakArea `json:"weak_areas"`
	}
	if err := c.getJSON(ctx, OpWeakAreas, "/api/progress/weak-areas", nil, &out); err != nil {
		return nil, err
	}
	return out.WeakAreas, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	return c.send(op, req, out, nil)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out any, schema *payloadSchema) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(op, req, out, schema)
}

// send executes the request and maps the outcome onto the error taxonomy:
// transport failure, non-2xx with optional detail, or a malformed payload.
func (c *Client) send(op string, req *http.Request, out any, schema *payloadSchema) error {
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"op":   op,
			"path": req.URL.Path,
		}).WithError(err).Debug("request failed")
		return &Error{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.WithFields(logrus.Fields{
		"op":       op,
		"method":   req.Method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Detail: decodeDetail(raw)}
	}

	if err := validatePayload(schema, raw); err != nil {
		return &Error{Op: op, Err: err}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

// decodeDetail extracts the backend's optional detail message from an error
// body. Anything undecodable yields an empty detail.
func decodeDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(raw, &body)
	return body.Detail
}

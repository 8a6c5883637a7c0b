package api

import (
	"errors"
	"fmt"
)

// Operation names, used to pick a fallback message when the backend sends no
// detail string.
const (
	OpUpload       = "upload"
	OpChat         = "chat"
	OpChatHistory  = "chat-history"
	OpQuizGenerate = "quiz-generate"
	OpQuizSubmit   = "quiz-submit"
	OpQuizHistory  = "quiz-history"
	OpProgress     = "progress"
	OpWeakAreas    = "weak-areas"
)

var fallbackMessages = map[string]string{
	OpUpload:       "Upload failed. Please try again.",
	OpChat:         "The assistant could not answer. Please try again.",
	OpChatHistory:  "Could not load the conversation history.",
	OpQuizGenerate: "Quiz generation failed. Please try again.",
	OpQuizSubmit:   "Quiz submission failed. Your answers were kept.",
	OpQuizHistory:  "Could not load quiz history.",
	OpProgress:     "Could not load progress data.",
	OpWeakAreas:    "Could not load weak areas.",
}

// Error is the single error type surfaced by the Client. Status is zero for
// transport failures. Detail carries the backend's human-readable message
// when one was sent.
type Error struct {
	Op     string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the text to show the user: the backend detail verbatim
// when present, otherwise a generic per-operation fallback.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if msg, ok := fallbackMessages[e.Op]; ok {
		return msg
	}
	return "Request failed. Please try again."
}

// Message extracts a user-presentable message from any error returned by
// this package.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

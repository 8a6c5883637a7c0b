// Package chat tracks one conversation with the assistant: the transcript,
// the backend-issued conversation id, and the single-flight send rule.
package chat

import (
	"errors"
	"strings"

	"github.com/abhisek/studymate/internal/api"
)

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one transcript entry. Turns are immutable once appended and
// ordered chronologically. Failed sends are recorded as assistant turns
// with IsError set — the user-authored turn above them is never retracted.
type Turn struct {
	Role    Role
	Content string
	Sources []api.Source
	IsError bool
}

var (
	// ErrSendInFlight is returned when a send is attempted while another is
	// outstanding.
	ErrSendInFlight = errors.New("a message is already being sent")

	// ErrEmptyMessage is returned for blank input.
	ErrEmptyMessage = errors.New("message is empty")
)

// Session holds the conversation state for the lifetime of one app run.
// The conversation id is owned by the backend: the session only forwards
// what the backend returned, never invents or mutates it.
type Session struct {
	conversationID string
	turns          []Turn
	inFlight       bool
}

func NewSession() *Session {
	return &Session{}
}

// ConversationID returns the backend-issued id, empty before the first
// successful send.
func (s *Session) ConversationID() string { return s.conversationID }

// Turns returns the transcript in chronological order.
func (s *Session) Turns() []Turn { return s.turns }

// Sending reports whether a send is outstanding.
func (s *Session) Sending() bool { return s.inFlight }

// BeginSend appends the user turn optimistically and marks the session
// in-flight. The caller then issues the network call with the current
// ConversationID and settles via CompleteSend or FailSend.
func (s *Session) BeginSend(text string) error {
	if s.inFlight {
		return ErrSendInFlight
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	s.turns = append(s.turns, Turn{Role: RoleUser, Content: text})
	s.inFlight = true
	return nil
}

// CompleteSend appends the assistant turn and adopts the returned
// conversation id, whether it confirms the current one or assigns the
// first.
func (s *Session) CompleteSend(resp *api.ChatResponse) {
	s.turns = append(s.turns, Turn{
		Role:    RoleAssistant,
		Content: resp.Answer,
		Sources: resp.Sources,
	})
	s.conversationID = resp.ConversationID
	s.inFlight = false
}

// FailSend absorbs a failure into the transcript as an error turn. The
// conversation id is untouched and nothing is rolled back.
func (s *Session) FailSend(message string) {
	s.turns = append(s.turns, Turn{
		Role:    RoleAssistant,
		Content: message,
		IsError: true,
	})
	s.inFlight = false
}

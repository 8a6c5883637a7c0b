package chat

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/chat"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/store"
)

// mockStudyLog implements store.StudyLog for testing.
type mockStudyLog struct {
	turns []store.ChatTurnRecord
}

func (m *mockStudyLog) AppendChatTurn(_ context.Context, rec store.ChatTurnRecord) error {
	m.turns = append(m.turns, rec)
	return nil
}

func (m *mockStudyLog) AppendQuizAttempt(_ context.Context, _ store.QuizAttemptRecord) error {
	return nil
}

func (m *mockStudyLog) RecentChatTurns(_ context.Context, _ int) ([]store.ChatTurnRecord, error) {
	return m.turns, nil
}

func (m *mockStudyLog) RecentQuizAttempts(_ context.Context, _ int) ([]store.QuizAttemptRecord, error) {
	return nil, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen() (*ChatScreen, *mockStudyLog) {
	log := &mockStudyLog{}
	client := api.New("http://127.0.0.1:0", time.Second, nil)
	return New(client, log, "session-1"), log
}

func TestChatScreen_Title(t *testing.T) {
	s, _ := testScreen()
	if s.Title() != "Chat" {
		t.Errorf("Title = %q, want %q", s.Title(), "Chat")
	}
}

func TestChatScreen_SendAppendsUserTurn(t *testing.T) {
	s, log := testScreen()
	s.input.Model.SetValue("What is mitosis?")

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a send command")
	}

	turns := s.session.Turns()
	if len(turns) != 1 {
		t.Fatalf("turns = %d, want 1", len(turns))
	}
	if turns[0].Role != chat.RoleUser || turns[0].Content != "What is mitosis?" {
		t.Errorf("turn = %+v", turns[0])
	}
	if !s.session.Sending() {
		t.Error("expected session to be in flight")
	}
	if s.input.Value() != "" {
		t.Error("expected input to be cleared")
	}
	if len(log.turns) != 1 || log.turns[0].Role != "user" {
		t.Errorf("logged turns = %+v", log.turns)
	}
}

func TestChatScreen_BlankInputIgnored(t *testing.T) {
	s, _ := testScreen()
	s.input.Model.SetValue("   ")

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if len(s.session.Turns()) != 0 {
		t.Error("expected no turns appended")
	}
}

func TestChatScreen_SecondSendBlockedWhileInFlight(t *testing.T) {
	s, _ := testScreen()
	s.input.Model.SetValue("first")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	s.input.Model.SetValue("second")
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command while a send is in flight")
	}
	if len(s.session.Turns()) != 1 {
		t.Errorf("turns = %d, want 1", len(s.session.Turns()))
	}
}

func TestChatScreen_ReplyAppendsAssistantTurn(t *testing.T) {
	s, log := testScreen()
	s.input.Model.SetValue("What is mitosis?")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(chatReplyMsg{Resp: &api.ChatResponse{
		ConversationID: "conv-9",
		Answer:         "Cell division.",
		Sources:        []api.Source{"chapter 3"},
	}})

	turns := s.session.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[1].Role != chat.RoleAssistant || turns[1].Content != "Cell division." {
		t.Errorf("turn = %+v", turns[1])
	}
	if s.session.ConversationID() != "conv-9" {
		t.Errorf("conversation id = %q, want conv-9", s.session.ConversationID())
	}
	if s.session.Sending() {
		t.Error("expected session settled")
	}
	if len(log.turns) != 2 || log.turns[1].Role != "assistant" {
		t.Errorf("logged turns = %+v", log.turns)
	}
}

func TestChatScreen_FailureBecomesErrorTurn(t *testing.T) {
	s, _ := testScreen()
	s.input.Model.SetValue("What is mitosis?")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(chatReplyMsg{Err: &api.Error{
		Op: api.OpChat, Status: 400, Detail: "no documents uploaded",
	}})

	turns := s.session.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if !turns[1].IsError || turns[1].Content != "no documents uploaded" {
		t.Errorf("turn = %+v", turns[1])
	}
	if s.session.ConversationID() != "" {
		t.Error("expected conversation id to stay unset on failure")
	}
}

func TestChatScreen_TruncateSource(t *testing.T) {
	long := make([]rune, maxSourceChars+50)
	for i := range long {
		long[i] = 'x'
	}
	got := truncateSource(string(long))
	if len([]rune(got)) != maxSourceChars+1 {
		t.Errorf("truncated length = %d, want %d", len([]rune(got)), maxSourceChars+1)
	}

	if truncateSource("short") != "short" {
		t.Error("short sources should pass through")
	}
}

func TestChatScreen_View(t *testing.T) {
	s, _ := testScreen()
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view")
	}
}

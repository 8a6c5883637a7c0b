package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/chat"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

const (
	maxSourcesShown = 3
	maxSourceChars  = 200
)

type chatReplyMsg struct {
	Resp *api.ChatResponse
	Err  error
}

// ChatScreen is the conversation screen: a transcript above a single-line
// input, talking to the backend's retrieval chat endpoint.
type ChatScreen struct {
	client    *api.Client
	studyLog  store.StudyLog
	sessionID string

	session *chat.Session
	input   components.TextInput
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a new ChatScreen.
func New(client *api.Client, studyLog store.StudyLog, sessionID string) *ChatScreen {
	return &ChatScreen{
		client:    client,
		studyLog:  studyLog,
		sessionID: sessionID,
		session:   chat.NewSession(),
		input:     components.NewTextInput("Ask about your documents...", false, 0),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.Err != nil {
			s.session.FailSend(api.Message(msg.Err))
		} else {
			s.session.CompleteSend(msg.Resp)
			s.logTurn(chat.RoleAssistant, msg.Resp.Answer, false)
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send begins a send if the input is non-blank and nothing is in flight.
func (s *ChatScreen) send() tea.Cmd {
	text := s.input.Value()
	if err := s.session.BeginSend(text); err != nil {
		return nil
	}
	s.input.Reset()
	s.logTurn(chat.RoleUser, text, false)

	conversationID := s.session.ConversationID()
	client := s.client
	return func() tea.Msg {
		resp, err := client.SendMessage(context.Background(), text, conversationID)
		return chatReplyMsg{Resp: resp, Err: err}
	}
}

// logTurn appends to the local study log. Persistence is best-effort and
// never blocks or fails the conversation.
func (s *ChatScreen) logTurn(role chat.Role, content string, isError bool) {
	if s.studyLog == nil {
		return
	}
	_ = s.studyLog.AppendChatTurn(context.Background(), store.ChatTurnRecord{
		SessionID: s.sessionID,
		Timestamp: time.Now(),
		Role:      string(role),
		Content:   content,
		IsError:   isError,
	})
}

func (s *ChatScreen) View(width, height int) string {
	var b strings.Builder

	turns := s.session.Turns()
	if len(turns) == 0 {
		b.WriteString(theme.Hint.Render("  Ask a question about your uploaded documents.") + "\n")
	}

	lines := transcriptLines(turns, width)

	// Keep the tail of the transcript visible above the input.
	inputHeight := 2
	visible := height - inputHeight
	if visible < 1 {
		visible = 1
	}
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}

	if s.session.Sending() {
		b.WriteString(theme.Hint.Render("  Thinking...") + "\n")
	}

	b.WriteString("\n  " + s.input.View())

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

// transcriptLines flattens the transcript into styled display lines.
func transcriptLines(turns []chat.Turn, width int) []string {
	var lines []string
	for _, t := range turns {
		switch {
		case t.Role == chat.RoleUser:
			lines = append(lines, theme.UserBubble.Render("  You: "+t.Content))
		case t.IsError:
			lines = append(lines, theme.Incorrect.Render("  ! "+t.Content))
		default:
			lines = append(lines, theme.AssistantBubble.Render("  StudyMate: "+t.Content))
			for i, src := range t.Sources {
				if i >= maxSourcesShown {
					break
				}
				lines = append(lines, theme.SourceNote.Render("    └ "+truncateSource(string(src))))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func truncateSource(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= maxSourceChars {
		return s
	}
	return string(runes[:maxSourceChars]) + "…"
}

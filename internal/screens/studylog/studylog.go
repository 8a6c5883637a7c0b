package studylog

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

const logWindow = 20

type logLoadedMsg struct {
	Turns    []store.ChatTurnRecord
	Attempts []store.QuizAttemptRecord
	Err      error
}

// StudyLogScreen shows recent local activity: chat turns and graded
// quizzes recorded on this machine.
type StudyLogScreen struct {
	studyLog store.StudyLog

	turns    []store.ChatTurnRecord
	attempts []store.QuizAttemptRecord
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StudyLogScreen)(nil)
var _ screen.KeyHintProvider = (*StudyLogScreen)(nil)

// New creates a new StudyLogScreen.
func New(studyLog store.StudyLog) *StudyLogScreen {
	return &StudyLogScreen{studyLog: studyLog}
}

func (s *StudyLogScreen) Init() tea.Cmd {
	studyLog := s.studyLog
	return func() tea.Msg {
		if studyLog == nil {
			return logLoadedMsg{}
		}
		ctx := context.Background()

		turns, err := studyLog.RecentChatTurns(ctx, logWindow)
		if err != nil {
			return logLoadedMsg{Err: err}
		}
		attempts, err := studyLog.RecentQuizAttempts(ctx, logWindow)
		if err != nil {
			return logLoadedMsg{Err: err}
		}
		return logLoadedMsg{Turns: turns, Attempts: attempts}
	}
}

func (s *StudyLogScreen) Title() string {
	return "Study Log"
}

func (s *StudyLogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StudyLogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(logLoadedMsg); ok {
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.turns = msg.Turns
			s.attempts = msg.Attempts
		}
		s.loaded = true
	}
	return s, nil
}

func (s *StudyLogScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading study log...")
	}
	if len(s.turns) == 0 && len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing logged yet. Chat or take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(s.attempts) > 0 {
		b.WriteString(theme.Body.Bold(true).Render("  Quizzes") + "\n")
		for _, a := range s.attempts {
			line := fmt.Sprintf("    %s  %s  %s  %d/%d correct",
				a.Timestamp.Format("Jan 02 15:04"),
				progress.ShortID(a.QuizID),
				progress.FormatPercent(a.Score),
				a.CorrectAnswers, a.TotalQuestions)
			b.WriteString(theme.Body.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if len(s.turns) > 0 {
		b.WriteString(theme.Body.Bold(true).Render("  Chat") + "\n")
		for _, t := range s.turns {
			content := t.Content
			if len(content) > 60 {
				content = content[:60] + "..."
			}
			style := theme.Body
			if t.IsError {
				style = theme.Incorrect
			}
			line := fmt.Sprintf("    %s  %-9s  %s",
				t.Timestamp.Format("Jan 02 15:04"), t.Role, content)
			b.WriteString(style.Render(line) + "\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

package progress

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

type progressLoadedMsg struct {
	Snapshot *api.ProgressSnapshot
	Err      error
}

// ProgressScreen displays the backend's progress aggregate: totals, weak
// areas, and recent quiz activity.
type ProgressScreen struct {
	client *api.Client

	overview progress.Overview
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a new ProgressScreen.
func New(client *api.Client) *ProgressScreen {
	return &ProgressScreen{client: client}
}

func (s *ProgressScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		snap, err := client.Progress(context.Background())
		return progressLoadedMsg{Snapshot: snap, Err: err}
	}
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(progressLoadedMsg); ok {
		if msg.Err != nil {
			s.errMsg = api.Message(msg.Err)
		} else {
			s.overview = progress.Project(msg.Snapshot)
		}
		s.loaded = true
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}

	o := s.overview

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Render("  Overall") + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("    %d quizzes  ·  %d questions  ·  average %s",
		o.TotalQuizzes, o.QuestionsAttempted, o.AverageScore)) + "\n\n")

	b.WriteString(theme.Body.Bold(true).Render("  Weak areas") + "\n")
	if len(o.WeakAreas) == 0 {
		b.WriteString(theme.Hint.Render("    Nothing flagged yet. Take a few quizzes!") + "\n")
	} else {
		barWidth := width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		for _, area := range o.WeakAreas {
			bar := components.NewProgressBar(area.Topic, area.Accuracy/100, true, barWidth)
			b.WriteString("    " + bar.View() + "\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("      %d/%d correct",
				area.CorrectAnswers, area.TotalQuestions)) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(theme.Body.Bold(true).Render("  Recent quizzes") + "\n")
	if len(o.RecentActivity) == 0 {
		b.WriteString(theme.Hint.Render("    No quizzes yet.") + "\n")
	} else {
		for _, row := range o.RecentActivity {
			b.WriteString(theme.Body.Render(fmt.Sprintf("    %s  %s  %d questions",
				row.ShortID, row.Score, row.Questions)) + "\n")
		}
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/router"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/screens/chat"
	"github.com/abhisek/studymate/internal/screens/progress"
	"github.com/abhisek/studymate/internal/screens/quiz"
	"github.com/abhisek/studymate/internal/screens/studylog"
	"github.com/abhisek/studymate/internal/screens/upload"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(client *api.Client, studyLog store.StudyLog, sessionID string) *HomeScreen {
	items := []components.MenuItem{
		{Label: "CHAT", Hint: "ask questions about your documents", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chat.New(client, studyLog, sessionID)}
			}
		}},
		{Label: "QUIZ", Hint: "test yourself on uploaded material", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(client, studyLog, sessionID)}
			}
		}},
		{Label: "UPLOAD", Hint: "add a document to the library", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: upload.New(client)}
			}
		}},
		{Label: "PROGRESS", Hint: "scores and weak areas", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: progress.New(client)}
			}
		}},
		{Label: "STUDY LOG", Hint: "recent activity on this machine", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: studylog.New(studyLog)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Width(width).Render("StudyMate")
	subtitle := theme.Subtitle.Width(width).Render("your documents, chat and quizzes")

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())

	content := strings.Join([]string{"", title, subtitle, "", menu}, "\n")

	return lipgloss.NewStyle().Height(height).Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
	"github.com/abhisek/studymate/internal/validate"
)

type uploadDoneMsg struct {
	Result *api.UploadResult
	Err    error
}

// UploadScreen sends a local document to the backend for indexing.
type UploadScreen struct {
	client *api.Client

	input     components.TextInput
	uploading bool
	statusMsg string
	statusErr bool
}

var _ screen.Screen = (*UploadScreen)(nil)
var _ screen.KeyHintProvider = (*UploadScreen)(nil)

// New creates a new UploadScreen.
func New(client *api.Client) *UploadScreen {
	return &UploadScreen{
		client: client,
		input:  components.NewTextInput("/path/to/notes.pdf", false, 0),
	}
}

func (s *UploadScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *UploadScreen) Title() string {
	return "Upload"
}

func (s *UploadScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Upload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *UploadScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case uploadDoneMsg:
		s.uploading = false
		if msg.Err != nil {
			s.statusMsg = api.Message(msg.Err)
			s.statusErr = true
		} else {
			s.statusMsg = fmt.Sprintf("Indexed %s (%d chunks)", msg.Result.Filename, msg.Result.ChunksCreated)
			s.statusErr = false
			s.input.Reset()
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.upload()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// upload validates the path locally before touching the network.
func (s *UploadScreen) upload() tea.Cmd {
	if s.uploading {
		return nil
	}

	path := strings.TrimSpace(s.input.Value())
	if path == "" {
		return nil
	}

	if err := validate.DocumentExt(path); err != nil {
		s.statusMsg = err.Error()
		s.statusErr = true
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		s.statusMsg = fmt.Sprintf("Cannot open %s", path)
		s.statusErr = true
		return nil
	}

	s.uploading = true
	s.statusMsg = ""

	client := s.client
	return func() tea.Msg {
		defer f.Close()
		result, err := client.Upload(context.Background(), filepath.Base(path), f)
		return uploadDoneMsg{Result: result, Err: err}
	}
}

func (s *UploadScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n" + theme.Body.Bold(true).Render("  Upload a document") + "\n")
	b.WriteString(theme.Hint.Render("  Supported: PDF, DOCX, TXT") + "\n\n")
	b.WriteString("  " + s.input.View() + "\n")

	if s.uploading {
		b.WriteString("\n" + theme.Hint.Render("  Uploading and indexing..."))
	}

	if s.statusMsg != "" {
		style := theme.Correct
		if s.statusErr {
			style = theme.Incorrect
		}
		b.WriteString("\n" + style.Render("  "+s.statusMsg))
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// Choice is a single-select option list. Unlike a graded selector it has
// no notion of a correct option; grading happens server-side.
type Choice struct {
	Options  []string
	Selected int
	Chosen   int
}

// NewChoice creates a new choice list with nothing chosen yet.
func NewChoice(options []string) Choice {
	return Choice{
		Options:  options,
		Selected: 0,
		Chosen:   -1,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	}

	return c, nil
}

// View renders the option list.
func (c Choice) View() string {
	var s string
	for i, opt := range c.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}

		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}

		marker := " "
		if i == c.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case i == c.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(line) + "\n"
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// ChosenValue returns the text of the chosen option, or "" when nothing
// has been chosen.
func (c Choice) ChosenValue() string {
	if c.Chosen < 0 || c.Chosen >= len(c.Options) {
		return ""
	}
	return c.Options[c.Chosen]
}

// SetChosen marks the option matching value as chosen, if present.
func (c *Choice) SetChosen(value string) {
	for i, opt := range c.Options {
		if opt == value {
			c.Chosen = i
			c.Selected = i
			return
		}
	}
	c.Chosen = -1
}

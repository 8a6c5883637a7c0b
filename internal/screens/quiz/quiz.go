package quiz

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/progress"
	"github.com/abhisek/studymate/internal/quiz"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/ui/components"
	"github.com/abhisek/studymate/internal/ui/layout"
	"github.com/abhisek/studymate/internal/ui/theme"
)

const historyPanelSize = 5

type quizReadyMsg struct {
	Quiz *api.Quiz
	Err  error
}

type quizGradedMsg struct {
	Result *api.QuizResult
	Err    error
}

type historyLoadedMsg struct {
	Entries []api.QuizHistoryEntry
	Err     error
}

// setup form focus targets.
const (
	focusCount = iota
	focusType
	focusTopic
)

// QuizScreen drives the quiz lifecycle: configure, generate, answer,
// submit, review.
type QuizScreen struct {
	client    *api.Client
	studyLog  store.StudyLog
	sessionID string

	machine *quiz.Machine

	// setup form
	countInput components.TextInput
	typeChoice components.Choice
	topicInput components.TextInput
	focus      int

	// answering
	current     int
	mcqChoice   components.Choice
	shortInput  components.TextInput
	statusMsg   string
	statusIsErr bool

	history []api.QuizHistoryEntry
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

var questionTypes = []string{api.QuestionTypeMCQ, api.QuestionTypeShortAnswer, api.QuestionTypeMixed}

// New creates a new QuizScreen in its setup form.
func New(client *api.Client, studyLog store.StudyLog, sessionID string) *QuizScreen {
	countInput := components.NewTextInput("5", true, 2)
	topicInput := components.NewTextInput("entire document (leave empty)", false, 0)
	topicInput.Model.Blur()

	typeChoice := components.NewChoice(questionTypes)
	typeChoice.Chosen = 0

	return &QuizScreen{
		client:     client,
		studyLog:   studyLog,
		sessionID:  sessionID,
		machine:    quiz.NewMachine(),
		countInput: countInput,
		typeChoice: typeChoice,
		topicInput: topicInput,
		focus:      focusCount,
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return tea.Batch(s.countInput.Init(), s.loadHistory())
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.machine.State() {
	case quiz.StateIdle:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.StateInProgress:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	case quiz.StateCompleted:
		return []layout.KeyHint{
			{Key: "R", Description: "New quiz"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.machine.GenerateFailed()
			s.setStatus(api.Message(msg.Err), true)
			return s, nil
		}
		if err := s.machine.GenerateSucceeded(msg.Quiz); err != nil {
			return s, nil
		}
		s.current = 0
		s.statusMsg = ""
		s.prepareQuestion()
		return s, nil

	case quizGradedMsg:
		if msg.Err != nil {
			s.machine.SubmitFailed()
			s.setStatus(api.Message(msg.Err), true)
			return s, nil
		}
		if err := s.machine.SubmitSucceeded(msg.Result); err != nil {
			return s, nil
		}
		s.statusMsg = ""
		s.logAttempt(msg.Result)
		return s, s.loadHistory()

	case historyLoadedMsg:
		if msg.Err == nil {
			s.history = quiz.RecentHistory(msg.Entries, historyPanelSize)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward remaining messages (cursor blinks etc.) to the active input.
	var cmd tea.Cmd
	switch s.machine.State() {
	case quiz.StateIdle:
		switch s.focus {
		case focusCount:
			s.countInput, cmd = s.countInput.Update(msg)
		case focusTopic:
			s.topicInput, cmd = s.topicInput.Update(msg)
		}
	case quiz.StateInProgress:
		if q := s.machine.Quiz(); q != nil && q.Questions[s.current].Type != api.QuestionTypeMCQ {
			s.shortInput, cmd = s.shortInput.Update(msg)
		}
	}
	return s, cmd
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.machine.State() {
	case quiz.StateIdle:
		return s.updateSetup(msg)
	case quiz.StateInProgress:
		return s.updateAnswering(msg)
	case quiz.StateCompleted:
		if msg.String() == "r" || msg.String() == "R" {
			if err := s.machine.Reset(); err == nil {
				s.statusMsg = ""
			}
		}
		return s, nil
	}
	// Generating and Submitting ignore input.
	return s, nil
}

func (s *QuizScreen) updateSetup(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.focus = (s.focus + 1) % 3
		s.syncFocus()
		return s, nil
	case "shift+tab":
		s.focus = (s.focus + 2) % 3
		s.syncFocus()
		return s, nil
	case "enter":
		return s, s.generate()
	}

	var cmd tea.Cmd
	switch s.focus {
	case focusCount:
		s.countInput, cmd = s.countInput.Update(msg)
	case focusType:
		s.typeChoice, cmd = s.typeChoice.Update(msg)
		// The highlighted type is the chosen type; no separate confirm step.
		s.typeChoice.Chosen = s.typeChoice.Selected
	case focusTopic:
		s.topicInput, cmd = s.topicInput.Update(msg)
	}
	return s, cmd
}

func (s *QuizScreen) syncFocus() {
	s.countInput.Model.Blur()
	s.topicInput.Model.Blur()
	switch s.focus {
	case focusCount:
		s.countInput.Model.Focus()
	case focusTopic:
		s.topicInput.Model.Focus()
	}
}

// generate validates the form and kicks off quiz generation.
func (s *QuizScreen) generate() tea.Cmd {
	count, err := s.countInput.NumericValue()
	if err != nil {
		s.setStatus(fmt.Sprintf("Question count must be a number between %d and %d", quiz.MinQuestions, quiz.MaxQuestions), true)
		return nil
	}

	params := quiz.GenerateParams{
		NumQuestions: count,
		QuestionType: s.typeChoice.ChosenValue(),
		Topic:        strings.TrimSpace(s.topicInput.Value()),
	}
	if err := s.machine.StartGenerate(params); err != nil {
		s.setStatus(err.Error(), true)
		return nil
	}
	s.statusMsg = ""

	client := s.client
	req := params.Request()
	return func() tea.Msg {
		q, err := client.GenerateQuiz(context.Background(), req)
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *QuizScreen) updateAnswering(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.machine.Quiz()
	if q == nil {
		return s, nil
	}

	switch msg.String() {
	case "left", "shift+tab":
		s.recordCurrent()
		if s.current > 0 {
			s.current--
			s.prepareQuestion()
		}
		return s, nil
	case "right", "tab":
		s.recordCurrent()
		if s.current < len(q.Questions)-1 {
			s.current++
			s.prepareQuestion()
		}
		return s, nil
	case "ctrl+s":
		s.recordCurrent()
		return s, s.submit()
	case "enter":
		if q.Questions[s.current].Type == api.QuestionTypeMCQ {
			var cmd tea.Cmd
			s.mcqChoice, cmd = s.mcqChoice.Update(msg)
			s.recordCurrent()
			if s.current < len(q.Questions)-1 {
				s.current++
				s.prepareQuestion()
			}
			return s, cmd
		}
		s.recordCurrent()
		if s.current < len(q.Questions)-1 {
			s.current++
			s.prepareQuestion()
		}
		return s, nil
	}

	var cmd tea.Cmd
	if q.Questions[s.current].Type == api.QuestionTypeMCQ {
		s.mcqChoice, cmd = s.mcqChoice.Update(msg)
	} else {
		s.shortInput, cmd = s.shortInput.Update(msg)
	}
	return s, cmd
}

// recordCurrent saves the visible answer widget into the answer set.
func (s *QuizScreen) recordCurrent() {
	q := s.machine.Quiz()
	if q == nil || s.current >= len(q.Questions) {
		return
	}
	var value string
	if q.Questions[s.current].Type == api.QuestionTypeMCQ {
		value = s.mcqChoice.ChosenValue()
	} else {
		value = s.shortInput.Value()
	}
	_ = s.machine.SetAnswer(s.current, value)
}

// prepareQuestion rebuilds the answer widget for the current question,
// restoring any previously recorded answer.
func (s *QuizScreen) prepareQuestion() {
	q := s.machine.Quiz()
	if q == nil || s.current >= len(q.Questions) {
		return
	}
	question := q.Questions[s.current]
	prev, _ := s.machine.Answer(s.current)

	if question.Type == api.QuestionTypeMCQ {
		s.mcqChoice = components.NewChoice(question.Options)
		if prev != "" {
			s.mcqChoice.SetChosen(prev)
		}
	} else {
		s.shortInput = components.NewTextInput("Type your answer...", false, 0)
		s.shortInput.Model.SetValue(prev)
		s.shortInput.Model.Focus()
	}
}

// submit checks completeness locally, then sends the full answer set.
func (s *QuizScreen) submit() tea.Cmd {
	answers, err := s.machine.BeginSubmit()
	if err != nil {
		s.setStatus(err.Error(), true)
		return nil
	}
	s.statusMsg = ""

	client := s.client
	quizID := s.machine.Quiz().QuizID
	return func() tea.Msg {
		result, err := client.SubmitQuiz(context.Background(), quizID, answers)
		return quizGradedMsg{Result: result, Err: err}
	}
}

// loadHistory refreshes the recent-quizzes panel. Failures leave the
// previous panel in place.
func (s *QuizScreen) loadHistory() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		entries, err := client.QuizHistory(context.Background())
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

// logAttempt appends the graded quiz to the local study log, best-effort.
func (s *QuizScreen) logAttempt(result *api.QuizResult) {
	if s.studyLog == nil {
		return
	}
	_ = s.studyLog.AppendQuizAttempt(context.Background(), store.QuizAttemptRecord{
		SessionID:      s.sessionID,
		Timestamp:      time.Now(),
		QuizID:         result.QuizID,
		Score:          result.Score,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
	})
}

func (s *QuizScreen) setStatus(msg string, isErr bool) {
	s.statusMsg = msg
	s.statusIsErr = isErr
}

func (s *QuizScreen) View(width, height int) string {
	var body string
	switch s.machine.State() {
	case quiz.StateIdle:
		body = s.viewSetup(width)
	case quiz.StateGenerating:
		body = theme.Hint.Render("\n  Generating quiz...")
	case quiz.StateInProgress:
		body = s.viewAnswering(width)
	case quiz.StateSubmitting:
		body = theme.Hint.Render("\n  Grading...")
	case quiz.StateCompleted:
		body = s.viewResult(width)
	}

	if s.statusMsg != "" {
		style := theme.Hint
		if s.statusIsErr {
			style = theme.Incorrect
		}
		body += "\n\n" + style.Render("  "+s.statusMsg)
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(body)
}

func (s *QuizScreen) viewSetup(width int) string {
	var b strings.Builder

	b.WriteString("\n" + theme.Body.Bold(true).Render("  New quiz") + "\n\n")

	label := func(text string, focused bool) string {
		style := theme.Body
		if focused {
			style = theme.Selected
		}
		return style.Render("  " + text)
	}

	b.WriteString(label("Questions ("+fmt.Sprintf("%d-%d", quiz.MinQuestions, quiz.MaxQuestions)+"):", s.focus == focusCount) + "\n")
	b.WriteString("  " + s.countInput.View() + "\n\n")

	b.WriteString(label("Question type:", s.focus == focusType) + "\n")
	b.WriteString(s.typeChoice.View() + "\n")

	b.WriteString(label("Topic (optional):", s.focus == focusTopic) + "\n")
	b.WriteString("  " + s.topicInput.View() + "\n")

	b.WriteString("\n" + s.viewHistoryPanel(width))

	return b.String()
}

func (s *QuizScreen) viewAnswering(width int) string {
	q := s.machine.Quiz()
	question := q.Questions[s.current]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Question %d of %d  ·  %d answered",
		s.current+1, len(q.Questions), s.machine.AnswerCount())) + "\n\n")
	b.WriteString(theme.Body.Bold(true).Render("  "+question.Question) + "\n\n")

	if question.Type == api.QuestionTypeMCQ {
		b.WriteString(s.mcqChoice.View())
	} else {
		b.WriteString("  " + s.shortInput.View() + "\n")
	}

	return b.String()
}

func (s *QuizScreen) viewResult(width int) string {
	result := s.machine.Result()
	if result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  Quiz complete") + "\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("  Score: %s  (%d/%d correct)",
		progress.FormatPercent(result.Score), result.CorrectAnswers, result.TotalQuestions)) + "\n\n")

	indices := make([]int, 0, len(result.Results))
	for i := range result.Results {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	for _, i := range indices {
		r := result.Results[i]
		mark := theme.Correct.Render("✓")
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		b.WriteString(fmt.Sprintf("  %s %d. %s\n", mark, i+1, r.Question))
		b.WriteString(theme.Hint.Render("      your answer: "+r.UserAnswer) + "\n")
		if !r.Correct {
			b.WriteString(theme.Correct.Render("      correct: "+r.CorrectAnswer) + "\n")
		}
	}

	b.WriteString("\n" + s.viewHistoryPanel(width))

	return b.String()
}

func (s *QuizScreen) viewHistoryPanel(width int) string {
	if len(s.history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Hint.Render("  Recent quizzes") + "\n")
	for _, e := range s.history {
		line := fmt.Sprintf("    %s  %s  %d questions",
			progress.ShortID(e.QuizID), progress.HistoryScoreLabel(e.Score), e.TotalQuestions)
		b.WriteString(theme.Body.Faint(true).Render(line) + "\n")
	}
	return b.String()
}

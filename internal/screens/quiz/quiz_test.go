package quiz

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/quiz"
	"github.com/abhisek/studymate/internal/screen"
	"github.com/abhisek/studymate/internal/store"
)

// mockStudyLog implements store.StudyLog for testing.
type mockStudyLog struct {
	turns    []store.ChatTurnRecord
	attempts []store.QuizAttemptRecord
}

func (m *mockStudyLog) AppendChatTurn(_ context.Context, rec store.ChatTurnRecord) error {
	m.turns = append(m.turns, rec)
	return nil
}

func (m *mockStudyLog) AppendQuizAttempt(_ context.Context, rec store.QuizAttemptRecord) error {
	m.attempts = append(m.attempts, rec)
	return nil
}

func (m *mockStudyLog) RecentChatTurns(_ context.Context, _ int) ([]store.ChatTurnRecord, error) {
	return m.turns, nil
}

func (m *mockStudyLog) RecentQuizAttempts(_ context.Context, _ int) ([]store.QuizAttemptRecord, error) {
	return m.attempts, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testQuiz() *api.Quiz {
	return &api.Quiz{
		QuizID: "quiz-1",
		Questions: []api.Question{
			{Question: "What is photosynthesis?", Type: api.QuestionTypeShortAnswer},
			{Question: "Which organelle?", Type: api.QuestionTypeMCQ, Options: []string{"Nucleus", "Chloroplast", "Ribosome", "Vacuole"}},
		},
	}
}

func testScreen() (*QuizScreen, *mockStudyLog) {
	log := &mockStudyLog{}
	client := api.New("http://127.0.0.1:0", time.Second, nil)
	return New(client, log, "session-1"), log
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testScreen()
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_GenerateRejectsBadCount(t *testing.T) {
	s, _ := testScreen()
	s.countInput.Model.SetValue("")

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for non-numeric count")
	}
	if s.statusMsg == "" {
		t.Error("expected a status message")
	}
	if s.machine.State() != quiz.StateIdle {
		t.Errorf("state = %v, want Idle", s.machine.State())
	}
}

func TestQuizScreen_GenerateRejectsOutOfRange(t *testing.T) {
	s, _ := testScreen()
	s.countInput.Model.SetValue("25")

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for out-of-range count")
	}
	if s.machine.State() != quiz.StateIdle {
		t.Errorf("state = %v, want Idle", s.machine.State())
	}
}

func TestQuizScreen_GenerateStarts(t *testing.T) {
	s, _ := testScreen()
	s.countInput.Model.SetValue("5")

	var scr screen.Screen = s
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if s.machine.State() != quiz.StateGenerating {
		t.Errorf("state = %v, want Generating", s.machine.State())
	}
}

func TestQuizScreen_GenerateFailureReturnsToSetup(t *testing.T) {
	s, _ := testScreen()
	s.countInput.Model.SetValue("5")

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(quizReadyMsg{Err: &api.Error{Op: api.OpQuizGenerate, Status: 400, Detail: "no documents uploaded"}})

	if s.machine.State() != quiz.StateIdle {
		t.Errorf("state = %v, want Idle", s.machine.State())
	}
	if s.statusMsg != "no documents uploaded" {
		t.Errorf("statusMsg = %q, want backend detail", s.statusMsg)
	}
}

func beginQuiz(t *testing.T, s *QuizScreen) {
	t.Helper()
	s.countInput.Model.SetValue("5")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(quizReadyMsg{Quiz: testQuiz()})
	if s.machine.State() != quiz.StateInProgress {
		t.Fatalf("state = %v, want InProgress", s.machine.State())
	}
}

func TestQuizScreen_AnswerAndAdvance(t *testing.T) {
	s, _ := testScreen()
	beginQuiz(t, s)

	// Type a short answer and advance.
	s.shortInput.Model.SetValue("plants making food from light")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	if s.current != 1 {
		t.Errorf("current = %d, want 1", s.current)
	}
	if got, ok := s.machine.Answer(0); !ok || got != "plants making food from light" {
		t.Errorf("answer 0 = %q, %v", got, ok)
	}

	// Pick the second option of the MCQ.
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	if got, ok := s.machine.Answer(1); !ok || got != "Chloroplast" {
		t.Errorf("answer 1 = %q, %v", got, ok)
	}
}

func TestQuizScreen_SubmitIncompleteRejected(t *testing.T) {
	s, _ := testScreen()
	beginQuiz(t, s)

	var scr screen.Screen = s
	_, cmd := scr.Update(ctrlKey('s'))
	if cmd != nil {
		t.Error("expected no command for incomplete submission")
	}
	if s.machine.State() != quiz.StateInProgress {
		t.Errorf("state = %v, want InProgress", s.machine.State())
	}
	if s.statusMsg == "" {
		t.Error("expected a status message listing unanswered questions")
	}
}

func TestQuizScreen_SubmitComplete(t *testing.T) {
	s, _ := testScreen()
	beginQuiz(t, s)

	s.shortInput.Model.SetValue("light to sugar")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))

	_, cmd := scr.Update(ctrlKey('s'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if s.machine.State() != quiz.StateSubmitting {
		t.Errorf("state = %v, want Submitting", s.machine.State())
	}
}

func TestQuizScreen_GradedLogsAttempt(t *testing.T) {
	s, log := testScreen()
	beginQuiz(t, s)

	s.shortInput.Model.SetValue("light to sugar")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(ctrlKey('s'))

	result := &api.QuizResult{
		QuizID:         "quiz-1",
		Score:          50,
		CorrectAnswers: 1,
		TotalQuestions: 2,
		Results: map[int]api.QuestionResult{
			0: {Question: "What is photosynthesis?", UserAnswer: "light to sugar", CorrectAnswer: "light to sugar", Correct: true},
			1: {Question: "Which organelle?", UserAnswer: "Chloroplast", CorrectAnswer: "Ribosome", Correct: false},
		},
	}
	_, cmd := scr.Update(quizGradedMsg{Result: result})

	if s.machine.State() != quiz.StateCompleted {
		t.Errorf("state = %v, want Completed", s.machine.State())
	}
	if cmd == nil {
		t.Error("expected a history refresh command")
	}
	if len(log.attempts) != 1 {
		t.Fatalf("attempts logged = %d, want 1", len(log.attempts))
	}
	if log.attempts[0].QuizID != "quiz-1" || log.attempts[0].Score != 50 {
		t.Errorf("logged attempt = %+v", log.attempts[0])
	}
}

func TestQuizScreen_SubmitFailurePreservesAnswers(t *testing.T) {
	s, _ := testScreen()
	beginQuiz(t, s)

	s.shortInput.Model.SetValue("light to sugar")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(ctrlKey('s'))

	scr, _ = scr.Update(quizGradedMsg{Err: &api.Error{Op: api.OpQuizSubmit, Status: 502}})

	if s.machine.State() != quiz.StateInProgress {
		t.Errorf("state = %v, want InProgress", s.machine.State())
	}
	if s.machine.AnswerCount() != 2 {
		t.Errorf("answers = %d, want 2 preserved", s.machine.AnswerCount())
	}
	if s.statusMsg == "" {
		t.Error("expected a status message")
	}
}

func TestQuizScreen_ResetAfterCompleted(t *testing.T) {
	s, _ := testScreen()
	beginQuiz(t, s)

	s.shortInput.Model.SetValue("a")
	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(specialKey(tea.KeyDown))
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	scr, _ = scr.Update(ctrlKey('s'))
	scr, _ = scr.Update(quizGradedMsg{Result: &api.QuizResult{QuizID: "quiz-1", Score: 100, CorrectAnswers: 2, TotalQuestions: 2}})

	scr, _ = scr.Update(keyPress('r'))
	if s.machine.State() != quiz.StateIdle {
		t.Errorf("state = %v, want Idle after reset", s.machine.State())
	}
}

func TestQuizScreen_HistoryPanelCapped(t *testing.T) {
	s, _ := testScreen()

	entries := make([]api.QuizHistoryEntry, 8)
	for i := range entries {
		entries[i] = api.QuizHistoryEntry{QuizID: string(rune('a' + i)), TotalQuestions: 5}
	}
	var scr screen.Screen = s
	scr, _ = scr.Update(historyLoadedMsg{Entries: entries})

	if len(s.history) != historyPanelSize {
		t.Fatalf("history = %d entries, want %d", len(s.history), historyPanelSize)
	}
	if s.history[0].QuizID != "h" {
		t.Errorf("first entry = %q, want most recent", s.history[0].QuizID)
	}
}

func TestQuizScreen_ViewStates(t *testing.T) {
	s, _ := testScreen()
	if s.View(80, 24) == "" {
		t.Error("expected non-empty setup view")
	}

	beginQuiz(t, s)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty answering view")
	}
}

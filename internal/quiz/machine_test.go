package quiz

import (
	"errors"
	"testing"

	"github.com/abhisek/studymate/internal/api"
)

func testQuiz(n int) *api.Quiz {
	q := &api.Quiz{QuizID: "quiz-1"}
	for i := 0; i < n; i++ {
		q.Questions = append(q.Questions, api.Question{
			Question: "Pick one",
			Type:     api.QuestionTypeMCQ,
			Options:  []string{"a", "b", "c", "d"},
		})
	}
	return q
}

func inProgressMachine(t *testing.T, n int) *Machine {
	t.Helper()
	m := NewMachine()
	if err := m.StartGenerate(GenerateParams{NumQuestions: n, QuestionType: api.QuestionTypeMCQ}); err != nil {
		t.Fatalf("StartGenerate: %v", err)
	}
	if err := m.GenerateSucceeded(testQuiz(n)); err != nil {
		t.Fatalf("GenerateSucceeded: %v", err)
	}
	return m
}

func TestStartGenerate_RejectsOutOfRangeCount(t *testing.T) {
	m := NewMachine()
	for _, n := range []int{0, 2, 21} {
		if err := m.StartGenerate(GenerateParams{NumQuestions: n, QuestionType: api.QuestionTypeMCQ}); err == nil {
			t.Errorf("StartGenerate with %d questions: want error", n)
		}
		if m.State() != StateIdle {
			t.Errorf("state after rejected generate = %s, want idle", m.State())
		}
	}
}

func TestStartGenerate_RejectsUnknownType(t *testing.T) {
	m := NewMachine()
	if err := m.StartGenerate(GenerateParams{NumQuestions: 5, QuestionType: "essay"}); err == nil {
		t.Fatal("want validation error for unknown question type")
	}
	if m.State() != StateIdle {
		t.Errorf("state = %s, want idle", m.State())
	}
}

func TestStartGenerate_WhileOutstandingIsBusy(t *testing.T) {
	m := NewMachine()
	if err := m.StartGenerate(GenerateParams{NumQuestions: 5, QuestionType: api.QuestionTypeMCQ}); err != nil {
		t.Fatalf("StartGenerate: %v", err)
	}
	err := m.StartGenerate(GenerateParams{NumQuestions: 5, QuestionType: api.QuestionTypeMCQ})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
}

func TestGenerateFailed_ReturnsToIdle(t *testing.T) {
	m := NewMachine()
	_ = m.StartGenerate(GenerateParams{NumQuestions: 5, QuestionType: api.QuestionTypeMCQ})
	m.GenerateFailed()
	if m.State() != StateIdle {
		t.Errorf("state = %s, want idle", m.State())
	}
	if m.Quiz() != nil {
		t.Error("quiz should be nil after failed generation")
	}
}

func TestGenerateSucceeded_FreshEmptyAnswerSet(t *testing.T) {
	m := inProgressMachine(t, 5)
	if m.State() != StateInProgress {
		t.Fatalf("state = %s, want in_progress", m.State())
	}
	if got := len(m.Quiz().Questions); got != 5 {
		t.Errorf("questions = %d, want 5", got)
	}
	if m.AnswerCount() != 0 {
		t.Errorf("answer count = %d, want 0", m.AnswerCount())
	}
}

func TestSetAnswer_Idempotent(t *testing.T) {
	m := inProgressMachine(t, 3)
	_ = m.SetAnswer(0, "b")
	_ = m.SetAnswer(0, "b")
	if m.AnswerCount() != 1 {
		t.Errorf("answer count = %d, want 1", m.AnswerCount())
	}
	if v, _ := m.Answer(0); v != "b" {
		t.Errorf("answer = %q, want \"b\"", v)
	}
}

func TestSetAnswer_OverwriteAndClear(t *testing.T) {
	m := inProgressMachine(t, 3)
	_ = m.SetAnswer(1, "b")
	_ = m.SetAnswer(1, "c")
	if v, _ := m.Answer(1); v != "c" {
		t.Errorf("answer = %q, want \"c\"", v)
	}

	// An empty value removes the entry entirely.
	_ = m.SetAnswer(1, "  ")
	if _, ok := m.Answer(1); ok {
		t.Error("cleared answer should not remain in the set")
	}
	if m.AnswerCount() != 0 {
		t.Errorf("answer count = %d, want 0", m.AnswerCount())
	}
}

func TestSetAnswer_OutOfRange(t *testing.T) {
	m := inProgressMachine(t, 3)
	if err := m.SetAnswer(3, "a"); err == nil {
		t.Error("want error for index past the last question")
	}
	if err := m.SetAnswer(-1, "a"); err == nil {
		t.Error("want error for negative index")
	}
}

func TestBeginSubmit_IncompleteRejectedLocally(t *testing.T) {
	m := inProgressMachine(t, 5)
	for i := 0; i < 4; i++ {
		_ = m.SetAnswer(i, "a")
	}

	_, err := m.BeginSubmit()
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want *IncompleteError", err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0] != 4 {
		t.Errorf("missing = %v, want [4]", incomplete.Missing)
	}
	if m.State() != StateInProgress {
		t.Errorf("state = %s, want in_progress (unchanged)", m.State())
	}
	if m.AnswerCount() != 4 {
		t.Errorf("answer count = %d, want 4 (unchanged)", m.AnswerCount())
	}
}

func TestBeginSubmit_CompleteReturnsFullAnswerSet(t *testing.T) {
	m := inProgressMachine(t, 5)
	for i := 0; i < 5; i++ {
		_ = m.SetAnswer(i, "a")
	}

	answers, err := m.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if len(answers) != 5 {
		t.Errorf("answer set size = %d, want 5", len(answers))
	}
	if m.State() != StateSubmitting {
		t.Errorf("state = %s, want submitting", m.State())
	}
}

func TestSubmitSucceeded_CompletedDiscardsQuizAndAnswers(t *testing.T) {
	m := inProgressMachine(t, 5)
	for i := 0; i < 5; i++ {
		_ = m.SetAnswer(i, "a")
	}
	if _, err := m.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	result := &api.QuizResult{Score: 80.0, CorrectAnswers: 4, TotalQuestions: 5}
	if err := m.SubmitSucceeded(result); err != nil {
		t.Fatalf("SubmitSucceeded: %v", err)
	}

	if m.State() != StateCompleted {
		t.Errorf("state = %s, want completed", m.State())
	}
	got := m.Result()
	if got == nil || got.Score != 80.0 || got.CorrectAnswers != 4 || got.TotalQuestions != 5 {
		t.Errorf("result = %+v, want score 80 correct 4 total 5", got)
	}
	if m.Quiz() != nil {
		t.Error("quiz should be discarded after submission")
	}
	if m.AnswerCount() != 0 {
		t.Error("answer set should be discarded after submission")
	}
}

func TestSubmitFailed_PreservesAnswers(t *testing.T) {
	m := inProgressMachine(t, 3)
	for i := 0; i < 3; i++ {
		_ = m.SetAnswer(i, "b")
	}
	if _, err := m.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}

	m.SubmitFailed()
	if m.State() != StateInProgress {
		t.Errorf("state = %s, want in_progress", m.State())
	}
	if m.AnswerCount() != 3 {
		t.Errorf("answer count = %d, want 3 (preserved)", m.AnswerCount())
	}
}

func TestStartGenerate_DiscardsCurrentQuiz(t *testing.T) {
	m := inProgressMachine(t, 3)
	_ = m.SetAnswer(0, "a")

	if err := m.StartGenerate(GenerateParams{NumQuestions: 5, QuestionType: api.QuestionTypeMixed}); err != nil {
		t.Fatalf("StartGenerate: %v", err)
	}
	if m.Quiz() != nil || m.AnswerCount() != 0 {
		t.Error("prior quiz and answers should be discarded on new generation")
	}
}

func TestReset_FromCompleted(t *testing.T) {
	m := inProgressMachine(t, 3)
	for i := 0; i < 3; i++ {
		_ = m.SetAnswer(i, "a")
	}
	_, _ = m.BeginSubmit()
	_ = m.SubmitSucceeded(&api.QuizResult{Score: 100, CorrectAnswers: 3, TotalQuestions: 3})

	if err := m.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if m.State() != StateIdle {
		t.Errorf("state = %s, want idle", m.State())
	}
	if m.Result() != nil {
		t.Error("result should be discarded on reset")
	}
}

func TestRecentHistory_MostRecentFirstCapped(t *testing.T) {
	entries := make([]api.QuizHistoryEntry, 8)
	for i := range entries {
		entries[i] = api.QuizHistoryEntry{QuizID: string(rune('a' + i))}
	}

	recent := RecentHistory(entries, 5)
	if len(recent) != 5 {
		t.Fatalf("len = %d, want 5", len(recent))
	}
	if recent[0].QuizID != "h" || recent[4].QuizID != "d" {
		t.Errorf("order = %q..%q, want h..d", recent[0].QuizID, recent[4].QuizID)
	}
	// Source slice untouched.
	if entries[0].QuizID != "a" || entries[7].QuizID != "h" {
		t.Error("RecentHistory must not mutate its input")
	}
}

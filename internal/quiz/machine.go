// Package quiz drives a quiz through its lifecycle: Idle, Generating,
// InProgress, Submitting, Completed. All transitions are synchronous and
// local; network calls happen between BeginSubmit/StartGenerate and their
// Succeeded/Failed counterparts, driven by the caller.
package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/studymate/internal/api"
)

// State is the quiz lifecycle state.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateInProgress
	StateSubmitting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateInProgress:
		return "in_progress"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	// ErrNoActiveQuiz is returned for answer/submit calls outside InProgress.
	ErrNoActiveQuiz = errors.New("no active quiz")

	// ErrBusy is returned when a generate or submit call is already
	// outstanding.
	ErrBusy = errors.New("a request is already outstanding")
)

// IncompleteError reports the question indices still unanswered at submit
// time. No network call is made when it is returned.
type IncompleteError struct {
	Missing []int
}

func (e *IncompleteError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, idx := range e.Missing {
		parts[i] = fmt.Sprintf("%d", idx+1)
	}
	if len(parts) == 1 {
		return "question " + parts[0] + " is unanswered"
	}
	return "questions " + strings.Join(parts, ", ") + " are unanswered"
}

// Machine holds one quiz lifecycle. It is not safe for concurrent use; the
// UI guarantees at most one outstanding call at a time.
type Machine struct {
	state   State
	quiz    *api.Quiz
	answers map[int]string
	result  *api.QuizResult
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

func (m *Machine) State() State { return m.state }

// Quiz returns the active quiz, or nil outside InProgress/Submitting.
func (m *Machine) Quiz() *api.Quiz { return m.quiz }

// Result returns the graded result, or nil outside Completed.
func (m *Machine) Result() *api.QuizResult { return m.result }

// Answer returns the recorded answer for a question index.
func (m *Machine) Answer(index int) (string, bool) {
	v, ok := m.answers[index]
	return v, ok
}

// AnswerCount returns how many questions currently have answers.
func (m *Machine) AnswerCount() int { return len(m.answers) }

// StartGenerate validates params and enters Generating. Any current quiz or
// result is discarded; a failed validation leaves state untouched.
func (m *Machine) StartGenerate(params GenerateParams) error {
	if m.state == StateGenerating || m.state == StateSubmitting {
		return ErrBusy
	}
	if err := params.Validate(); err != nil {
		return err
	}
	m.quiz = nil
	m.answers = nil
	m.result = nil
	m.state = StateGenerating
	return nil
}

// GenerateSucceeded installs the new quiz with a fresh empty answer set.
func (m *Machine) GenerateSucceeded(q *api.Quiz) error {
	if m.state != StateGenerating {
		return fmt.Errorf("generate finished in state %s", m.state)
	}
	m.quiz = q
	m.answers = make(map[int]string)
	m.state = StateInProgress
	return nil
}

// GenerateFailed returns to Idle with no other mutation.
func (m *Machine) GenerateFailed() {
	if m.state == StateGenerating {
		m.state = StateIdle
	}
}

// SetAnswer upserts the answer for a question. An empty (or whitespace-only)
// value removes the entry: the answer set never holds entries for
// unanswered questions. Re-answering overwrites.
func (m *Machine) SetAnswer(index int, value string) error {
	if m.state != StateInProgress {
		return ErrNoActiveQuiz
	}
	if index < 0 || index >= len(m.quiz.Questions) {
		return fmt.Errorf("question index %d out of range", index)
	}
	if strings.TrimSpace(value) == "" {
		delete(m.answers, index)
		return nil
	}
	m.answers[index] = value
	return nil
}

// BeginSubmit checks completeness and enters Submitting, returning the
// answer set to post. An incomplete set returns *IncompleteError and leaves
// the state untouched — the caller must not issue a network call then.
func (m *Machine) BeginSubmit() (map[int]string, error) {
	if m.state != StateInProgress {
		return nil, ErrNoActiveQuiz
	}

	var missing []int
	for i := range m.quiz.Questions {
		if strings.TrimSpace(m.answers[i]) == "" {
			missing = append(missing, i)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, &IncompleteError{Missing: missing}
	}

	m.state = StateSubmitting

	answers := make(map[int]string, len(m.answers))
	for i, v := range m.answers {
		answers[i] = v
	}
	return answers, nil
}

// SubmitSucceeded enters Completed and discards the quiz and answer set;
// only the result remains.
func (m *Machine) SubmitSucceeded(result *api.QuizResult) error {
	if m.state != StateSubmitting {
		return fmt.Errorf("submit finished in state %s", m.state)
	}
	m.quiz = nil
	m.answers = nil
	m.result = result
	m.state = StateCompleted
	return nil
}

// SubmitFailed returns to InProgress. The answer set is preserved so the
// learner does not lose work.
func (m *Machine) SubmitFailed() {
	if m.state == StateSubmitting {
		m.state = StateInProgress
	}
}

// Reset discards any quiz or result and returns to Idle. No-op while a
// request is outstanding.
func (m *Machine) Reset() error {
	if m.state == StateGenerating || m.state == StateSubmitting {
		return ErrBusy
	}
	m.quiz = nil
	m.answers = nil
	m.result = nil
	m.state = StateIdle
	return nil
}

// RecentHistory returns up to max entries, most recent first. The input is
// not mutated; the backend sends its log oldest first.
func RecentHistory(entries []api.QuizHistoryEntry, max int) []api.QuizHistoryEntry {
	out := make([]api.QuizHistoryEntry, 0, max)
	for i := len(entries) - 1; i >= 0 && len(out) < max; i-- {
		out = append(out, entries[i])
	}
	return out
}

package api

import "encoding/json"

// Question type values accepted by the backend.
const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeShortAnswer = "short_answer"
	QuestionTypeMixed       = "mixed"
)

// UploadResult is the backend's response to a document upload.
type UploadResult struct {
	FileID        string `json:"file_id"`
	Filename      string `json:"filename"`
	ChunksCreated int    `json:"chunks_created"`
}

// Source is one retrieved excerpt backing an assistant answer. The backend
// sends either a bare string or an object with a "content" field; both decode
// to the excerpt text.
type Source string

func (s *Source) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Source(str)
		return nil
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Source(obj.Content)
	return nil
}

// ChatResponse is the backend's answer to a single chat turn.
type ChatResponse struct {
	ConversationID string   `json:"conversation_id"`
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
}

// TranscriptMessage is one entry of a backend-stored conversation transcript.
type TranscriptMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// GenerateQuizRequest asks the backend to generate a quiz.
type GenerateQuizRequest struct {
	NumQuestions int    `json:"num_questions"`
	QuestionType string `json:"question_type"`
	Topic        string `json:"topic,omitempty"`
}

// Question is a single quiz question. Options is present only for MCQ.
type Question struct {
	Question string   `json:"question"`
	Type     string   `json:"question_type"`
	Options  []string `json:"options,omitempty"`
}

// Quiz is a generated quiz. Question order and indices are stable for the
// lifetime of the quiz.
type Quiz struct {
	QuizID    string     `json:"quiz_id"`
	Questions []Question `json:"questions"`
}

// QuestionResult is the graded outcome for one question.
type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

// QuizResult is the graded outcome of a submitted quiz.
type QuizResult struct {
	QuizID         string                 `json:"quiz_id"`
	Score          float64                `json:"score"`
	CorrectAnswers int                    `json:"correct_answers"`
	TotalQuestions int                    `json:"total_questions"`
	Results        map[int]QuestionResult `json:"results"`
}

// QuizHistoryEntry is one row of the backend's quiz log. Score is nil for
// quizzes that were generated but never submitted.
type QuizHistoryEntry struct {
	QuizID         string   `json:"quiz_id"`
	Score          *float64 `json:"score"`
	TotalQuestions int      `json:"total_questions"`
}

// WeakArea is a topic the backend flagged for remediation.
type WeakArea struct {
	Topic          string  `json:"topic"`
	Accuracy       float64 `json:"accuracy"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
}

// Activity is one entry of the backend's recent-activity feed.
type Activity struct {
	QuizID         string  `json:"quiz_id"`
	Score          float64 `json:"score"`
	TotalQuestions int     `json:"total_questions"`
}

// ProgressSnapshot is the backend-computed progress aggregate. The client
// never derives or caches anything from it beyond a single fetch-display
// cycle.
type ProgressSnapshot struct {
	TotalQuizzes            int        `json:"total_quizzes"`
	TotalQuestionsAttempted int        `json:"total_questions_attempted"`
	AverageScore            float64    `json:"average_score"`
	WeakAreas               []WeakArea `json:"weak_areas"`
	RecentActivity          []Activity `json:"recent_activity"`
}

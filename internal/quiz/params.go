package quiz

import (
	"github.com/abhisek/studymate/internal/api"
	"github.com/abhisek/studymate/internal/validate"
)

// Generation bounds enforced before any network call.
const (
	MinQuestions = 3
	MaxQuestions = 20
)

// GenerateParams are the learner-chosen quiz generation settings. Topic is
// optional; empty means the whole corpus.
type GenerateParams struct {
	NumQuestions int    `json:"num_questions" validate:"min=3,max=20"`
	QuestionType string `json:"question_type" validate:"oneof=mcq short_answer mixed"`
	Topic        string `json:"topic"`
}

var paramsValidator = validate.New()

// Validate checks the parameter bounds and enum locally.
func (p GenerateParams) Validate() error {
	return paramsValidator.Struct(p)
}

// Request converts the params to the wire request shape.
func (p GenerateParams) Request() api.GenerateQuizRequest {
	return api.GenerateQuizRequest{
		NumQuestions: p.NumQuestions,
		QuestionType: p.QuestionType,
		Topic:        p.Topic,
	}
}

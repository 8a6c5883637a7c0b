package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	NumQuestions int    `json:"num_questions" validate:"min=3,max=20"`
	QuestionType string `json:"question_type" validate:"oneof=mcq short_answer mixed"`
}

func TestStructValid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(sampleRequest{NumQuestions: 5, QuestionType: "mcq"}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(sampleRequest{NumQuestions: 2, QuestionType: "essay"})
	require.Error(t, err)

	ferr, ok := err.(*FieldsError)
	require.True(t, ok)
	assert.Contains(t, ferr.Fields, "num_questions")
	assert.Contains(t, ferr.Fields, "question_type")

	// Messages are sorted by field name for stable output.
	assert.Contains(t, ferr.Error(), "num_questions")
}

func TestDocumentExt(t *testing.T) {
	assert.NoError(t, DocumentExt("notes.pdf"))
	assert.NoError(t, DocumentExt("Thesis.DOCX"))
	assert.NoError(t, DocumentExt("todo.txt"))

	assert.ErrorIs(t, DocumentExt("slides.pptx"), ErrUnsupportedFile)
	assert.ErrorIs(t, DocumentExt("archive"), ErrUnsupportedFile)
}

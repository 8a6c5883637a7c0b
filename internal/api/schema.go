package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema describes the JSON structure a backend response must have
// before the client will decode it.
type payloadSchema struct {
	Name       string
	Definition map[string]any
}

// quizSchema guards quiz generation responses. A quiz with a missing id,
// missing questions, or questions of an unknown type is rejected here rather
// than half-decoded into the state machine.
var quizSchema = &payloadSchema{
	Name: "quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz_id": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"question_type": map[string]any{
							"type": "string",
							"enum": []any{"mcq", "short_answer"},
						},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required": []any{"question", "question_type"},
				},
			},
		},
		"required": []any{"quiz_id", "questions"},
	},
}

// quizResultSchema guards quiz submission responses.
var quizResultSchema = &payloadSchema{
	Name: "quiz-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "number",
				"minimum": 0,
				"maximum": 100,
			},
			"correct_answers": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"total_questions": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"results": map[string]any{
				"type": "object",
			},
		},
		"required": []any{"score", "correct_answers", "total_questions"},
	},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw JSON against the given schema. Returns nil when
// the schema is nil or validation passes.
func validatePayload(schema *payloadSchema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("unexpected %s payload: %w", schema.Name, err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema, compiling on first use.
func compiledSchema(schema *payloadSchema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value, not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

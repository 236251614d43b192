package quiz

import "github.com/abhisek/profexa/internal/llm"

// QuestionCount is the fixed quiz length.
const QuestionCount = 7

// OptionCount is the number of choices per question.
const OptionCount = 4

// QuizSchema defines the JSON schema for quiz generation.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A seven-question multiple choice quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": QuestionCount,
				"maxItems": QuestionCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"minItems": OptionCount,
							"maxItems": OptionCount,
							"items":    map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": OptionCount - 1,
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

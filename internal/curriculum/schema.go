package curriculum

import "github.com/abhisek/profexa/internal/llm"

// SubtopicCount is the number of subtopics generated per topic.
const SubtopicCount = 5

// SubtopicSchema defines the JSON schema for subtopic generation.
var SubtopicSchema = &llm.Schema{
	Name:        "subtopic-list",
	Description: "Five broad subtopics within a topic for a given learning level",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subtopics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    SubtopicCount,
				"maxItems":    SubtopicCount,
				"description": "Exactly 5 broad subtopic names (2-5 words each)",
			},
		},
		"required":             []any{"subtopics"},
		"additionalProperties": false,
	},
}

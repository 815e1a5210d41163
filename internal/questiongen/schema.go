package questiongen

import "github.com/abhisek/dugout/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "coaching-question",
	Description: "One Socratic question that guides a youth player's decision",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "A single age-appropriate question, in plain text, ending with a question mark",
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

package curriculum

import "github.com/abhisek/edudesign/internal/llm"

func nonEmptyString(desc string) map[string]any {
	return map[string]any{
		"type":        "string",
		"minLength":   1,
		"description": desc,
	}
}

// CurriculumSchema constrains structured generation of a Design.
var CurriculumSchema = &llm.Schema{
	Name:        "curriculum-design",
	Description: "A cross-disciplinary, play-centered curriculum unit with growth-based assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":         nonEmptyString("Evocative title of the unit"),
			"targetGrade":   nonEmptyString("Grade level the unit is designed for"),
			"narrativeRole": nonEmptyString("Role the learners take on throughout the unit, e.g. Ocean Engineer"),
			"overview":      nonEmptyString("Two to four sentence overview of the phenomenon and driving question"),
			"modules": map[string]any{
				"type":        "array",
				"minItems":    1,
				"description": "Subject strands that integrate around the theme",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject": nonEmptyString("School subject, e.g. Science"),
						"focus":   nonEmptyString("What this subject contributes to the theme"),
						"activities": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items":    nonEmptyString("A hands-on, playful activity"),
						},
					},
					"required":             []any{"subject", "focus", "activities"},
					"additionalProperties": false,
				},
			},
			"joyMechanism": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":           nonEmptyString("Name of the game or play element"),
					"description":     nonEmptyString("How the play works"),
					"learningOutcome": nonEmptyString("What learners gain through it"),
				},
				"required":             []any{"title", "description", "learningOutcome"},
				"additionalProperties": false,
			},
			"finalShowcase": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"format":      nonEmptyString("Form of the showcase, e.g. exhibition"),
					"description": nonEmptyString("What learners present and to whom"),
				},
				"required":             []any{"format", "description"},
				"additionalProperties": false,
			},
			"assessment": map[string]any{
				"type":        "array",
				"minItems":    1,
				"description": "Non-score growth metrics",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": nonEmptyString("Competency name, e.g. Collaboration"),
						"value": map[string]any{
							"type":        "number",
							"minimum":     0,
							"maximum":     100,
							"description": "Expected growth emphasis from 0 to 100",
						},
						"description": nonEmptyString("How growth is observed without scores"),
					},
					"required":             []any{"name", "value", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{
			"title", "targetGrade", "narrativeRole", "overview",
			"modules", "joyMechanism", "finalShowcase", "assessment",
		},
		"additionalProperties": false,
	},
}

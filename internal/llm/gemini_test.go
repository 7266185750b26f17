package llm

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-image", "gemini-2.5-flash-image"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
		"required": []any{"name", "age"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"].Type != "STRING" {
		t.Fatalf("expected STRING for name, got %s", schema.Properties["name"].Type)
	}
	if schema.Properties["age"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for age, got %s", schema.Properties["age"].Type)
	}
	if len(schema.Properties["grade"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["grade"].Enum))
	}
	if schema.Properties["scores"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for scores, got %s", schema.Properties["scores"].Type)
	}
	if schema.Properties["scores"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for scores items, got %s", schema.Properties["scores"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_Constraints(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value":      map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"title":      map[string]any{"type": "string", "minLength": 1},
			"activities": map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
		},
	}

	schema := buildGeminiSchema(def)

	value := schema.Properties["value"]
	if value.Minimum == nil || *value.Minimum != 0 {
		t.Fatalf("expected minimum 0, got %v", value.Minimum)
	}
	if value.Maximum == nil || *value.Maximum != 100 {
		t.Fatalf("expected maximum 100, got %v", value.Maximum)
	}
	if title := schema.Properties["title"]; title.MinLength == nil || *title.MinLength != 1 {
		t.Fatalf("expected minLength 1, got %v", title.MinLength)
	}
	if acts := schema.Properties["activities"]; acts.MinItems == nil || *acts.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", acts.MinItems)
	}
}

func TestBuildGeminiContents_Roles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "Why does this matter?"},
		{Role: RoleAssistant, Content: "Great question!"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Fatalf("unexpected roles %q, %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "Great question!" {
		t.Fatalf("unexpected text %q", contents[1].Parts[0].Text)
	}
}

func TestFirstInlineImage(t *testing.T) {
	if firstInlineImage(nil) != nil {
		t.Fatal("expected nil for nil response")
	}

	textOnly := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "here is your image"}}},
		}},
	}
	if firstInlineImage(textOnly) != nil {
		t.Fatal("expected nil when no inline data")
	}

	withImage := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "caption"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0x89, 0x50}}},
				{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte{0xff}}},
			}},
		}},
	}
	blob := firstInlineImage(withImage)
	if blob == nil || blob.MIMEType != "image/png" {
		t.Fatalf("expected first png part, got %+v", blob)
	}
}

func TestMapGeminiError(t *testing.T) {
	rl := mapGeminiError(genai.APIError{Code: http.StatusTooManyRequests, Message: "quota"})
	var rateErr *ErrRateLimit
	if !errors.As(rl, &rateErr) {
		t.Fatalf("expected ErrRateLimit, got %T", rl)
	}

	unavail := mapGeminiError(genai.APIError{Code: http.StatusServiceUnavailable})
	var unErr *ErrProviderUnavailable
	if !errors.As(unavail, &unErr) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", unavail)
	}

	other := mapGeminiError(errors.New("dial tcp: connection refused"))
	if !errors.As(other, &unErr) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", other)
	}
}

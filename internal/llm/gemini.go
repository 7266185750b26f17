package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-3-flash-preview",
	"gemini-pro":   "gemini-3-pro-preview",
	"gemini-image": "gemini-2.5-flash-image",
}

// GeminiProvider implements Provider and ImageGenerator using the Google
// Gemini SDK.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	imageModel string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = "gemini-image"
	}

	return &GeminiProvider{
		client:     client,
		model:      resolveModel(cfg.Model, geminiModels),
		imageModel: resolveModel(imageModel, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	// Configure structured output.
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	contents := buildGeminiContents(req.Messages)

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	stop := mapGeminiStopReason(result)
	content := json.RawMessage(result.Text())

	if stop == "max_tokens" && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}

	// Validate against schema if provided.
	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: stop,
		Usage:      mapGeminiUsage(result.UsageMetadata),
	}

	return resp, nil
}

// GenerateImage renders req.Prompt with the image model and returns the
// first inline image part of the first candidate.
func (p *GeminiProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	config := &genai.GenerateContentConfig{}
	if req.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.imageModel, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	blob := firstInlineImage(result)
	if blob == nil {
		return nil, &ErrInvalidResponse{Err: ErrNoImageData}
	}

	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}

	return &ImageResponse{
		Data:     blob.Data,
		MIMEType: mime,
		Model:    p.imageModel,
		Usage:    mapGeminiUsage(result.UsageMetadata),
	}, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// firstInlineImage returns the first part carrying inline data, or nil.
func firstInlineImage(result *genai.GenerateContentResponse) *genai.Blob {
	if result == nil || len(result.Candidates) == 0 {
		return nil
	}
	cand := result.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}
	for _, part := range cand.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// buildGeminiSchema converts a JSON Schema definition map to a genai.Schema.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema)
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGeminiSchema(propDef)
			}
		}
	}

	if req, ok := def["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if enums, ok := def["enum"].([]any); ok {
		for _, e := range enums {
			if s, ok := e.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}

	if v, ok := numberValue(def["minimum"]); ok {
		schema.Minimum = &v
	}
	if v, ok := numberValue(def["maximum"]); ok {
		schema.Maximum = &v
	}
	if v, ok := numberValue(def["minLength"]); ok {
		n := int64(v)
		schema.MinLength = &n
	}
	if v, ok := numberValue(def["minItems"]); ok {
		n := int64(v)
		schema.MinItems = &n
	}

	return schema
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func mapGeminiUsage(meta *genai.GenerateContentResponseUsageMetadata) Usage {
	if meta == nil {
		return Usage{}
	}
	return Usage{
		InputTokens:  int(meta.PromptTokenCount),
		OutputTokens: int(meta.CandidatesTokenCount),
		TotalTokens:  int(meta.TotalTokenCount),
	}
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case "STOP":
			return "end"
		case "MAX_TOKENS":
			return "max_tokens"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	code := 0
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Code
	case errors.As(err, &apiErrPtr):
		code = apiErrPtr.Code
	}

	if code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

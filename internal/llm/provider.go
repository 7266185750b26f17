package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive either validated JSON
// (when a Schema is set) or the model's plain text reply.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ImageGenerator is implemented by providers that can render images.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Structured generation sends a
	// single user message; lesson chat replays prior turns before the newest
	// user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, the response Content is the raw text reply.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "curriculum-design".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was provided in the
	// request, this is the validated JSON object. When no Schema was
	// provided, this is the raw text response.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Text returns the response content as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// ImageRequest describes an image generation call.
type ImageRequest struct {
	Prompt string

	// AspectRatio such as "16:9". Empty leaves the model default.
	AspectRatio string
}

// ImageResponse carries the first inline image returned by the model.
type ImageResponse struct {
	Data     []byte
	MIMEType string
	Model    string
	Usage    Usage
}

// AsImageGenerator returns p as an ImageGenerator, or nil when the provider
// cannot render images.
func AsImageGenerator(p Provider) ImageGenerator {
	switch v := p.(type) {
	case imageCapable:
		if v.SupportsImages() {
			return v
		}
		return nil
	case ImageGenerator:
		return v
	}
	return nil
}

// imageCapable is implemented by decorators that forward GenerateImage only
// when the wrapped provider supports it.
type imageCapable interface {
	ImageGenerator
	SupportsImages() bool
}

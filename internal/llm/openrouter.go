package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Sent so OpenRouter attributes usage to this app.
	openRouterReferer = "https://github.com/abhisek/edudesign"
	openRouterTitle   = "EduDesign"
)

// openRouterModels maps the Gemini friendly names onto OpenRouter routes so
// the same config works for both backends. Other IDs pass through.
var openRouterModels = map[string]string{
	"gemini-pro":   "google/gemini-2.5-pro",
	"gemini-flash": "google/gemini-2.5-flash",
}

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter's
// OpenAI-compatible endpoint. It serves text and structured generation
// only; illustrations need the Gemini image model.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, openRouterModels),
	}}, nil
}

// attributionTransport adds OpenRouter's app attribution headers.
type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}

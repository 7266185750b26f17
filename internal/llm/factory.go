package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/edudesign/internal/store"
)

// Providers bundles the clients used by curriculum design and lesson chat.
type Providers struct {
	// Design serves schema-constrained curriculum generation.
	Design Provider

	// Chat serves lesson conversations, usually on a faster model.
	Chat Provider

	// Images is nil when the selected provider cannot render images.
	Images ImageGenerator
}

// NewProviders builds the design, chat and image clients from configuration.
// Every client is wrapped with logging middleware.
func NewProviders(ctx context.Context, cfg Config, eventRepo store.EventRepo) (*Providers, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	design, err := NewProvider(ctx, cfg, eventRepo)
	if err != nil {
		return nil, err
	}
	chat, err := NewProvider(ctx, cfg.ForChat(), eventRepo)
	if err != nil {
		return nil, err
	}

	return &Providers{
		Design: design,
		Chat:   chat,
		Images: AsImageGenerator(design),
	}, nil
}

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, eventRepo), nil
}

// UnconfiguredProviders returns clients that fail every call with reason.
// The application still starts without credentials; each generative
// request then surfaces the configuration problem to the user.
func UnconfiguredProviders(reason error) *Providers {
	p := NewUnconfiguredProvider(reason)
	return &Providers{Design: p, Chat: p}
}

// UnconfiguredProvider fails every request with ErrProviderUnavailable.
type UnconfiguredProvider struct {
	reason error
}

// NewUnconfiguredProvider creates a provider that always fails with reason.
func NewUnconfiguredProvider(reason error) *UnconfiguredProvider {
	return &UnconfiguredProvider{reason: reason}
}

func (u *UnconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.reason}
}

func (u *UnconfiguredProvider) ModelID() string {
	return "unconfigured"
}

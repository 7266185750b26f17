package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single LLM request when the caller applies it.
	// Zero leaves the SDK client defaults in place.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey    string
	Model     string // Default: "claude-sonnet"
	ChatModel string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey    string
	Model     string // Default: "gpt-4o"
	ChatModel string // Default: "gpt-4o-mini"
	BaseURL   string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey     string
	Model      string // Default: "gemini-pro"
	ChatModel  string // Default: "gemini-flash"
	ImageModel string // Default: "gemini-image"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey    string
	Model     string // Default: "google/gemini-2.5-pro"
	ChatModel string // Default: "google/gemini-2.5-flash"
	BaseURL   string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model:     "claude-sonnet",
			ChatModel: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o",
			ChatModel: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model:      "gemini-pro",
			ChatModel:  "gemini-flash",
			ImageModel: "gemini-image",
		},
		OpenRouter: OpenRouterConfig{
			Model:     "google/gemini-2.5-pro",
			ChatModel: "google/gemini-2.5-flash",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. Standard key variables (GEMINI_API_KEY,
// API_KEY, ...) are probed when no EDUDESIGN_* key is set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if discovered, ok := DiscoverConfig(); ok {
		cfg = discovered
	}
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays EDUDESIGN_* environment variables onto cfg.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("EDUDESIGN_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("EDUDESIGN_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("EDUDESIGN_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("EDUDESIGN_GEMINI_CHAT_MODEL"); m != "" {
		cfg.Gemini.ChatModel = m
	}
	if m := os.Getenv("EDUDESIGN_GEMINI_IMAGE_MODEL"); m != "" {
		cfg.Gemini.ImageModel = m
	}

	if k := os.Getenv("EDUDESIGN_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("EDUDESIGN_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("EDUDESIGN_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("EDUDESIGN_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("EDUDESIGN_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("EDUDESIGN_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("EDUDESIGN_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a Config selecting the
// first provider whose key is found. API_KEY is treated as a Gemini key.
// Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	provider, ok := LoadStandardKeys(&cfg)
	if !ok {
		return Config{}, false
	}
	cfg.Provider = provider
	return cfg, true
}

// LoadStandardKeys fills every provider's API key from its conventional
// environment variable and returns the highest-priority provider that has
// one.
func LoadStandardKeys(cfg *Config) (string, bool) {
	var found []string

	for _, env := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(env); k != "" {
			cfg.Gemini.APIKey = k
			found = append(found, "gemini")
			break
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
		found = append(found, "openai")
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
		found = append(found, "anthropic")
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
		found = append(found, "openrouter")
	}

	if len(found) == 0 {
		return "", false
	}
	return found[0], true
}

// SetModels overrides the design, chat and image models of the selected
// provider. Empty values keep the current setting.
func (c *Config) SetModels(model, chatModel, imageModel string) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	switch c.Provider {
	case "gemini":
		set(&c.Gemini.Model, model)
		set(&c.Gemini.ChatModel, chatModel)
		set(&c.Gemini.ImageModel, imageModel)
	case "anthropic":
		set(&c.Anthropic.Model, model)
		set(&c.Anthropic.ChatModel, chatModel)
	case "openai":
		set(&c.OpenAI.Model, model)
		set(&c.OpenAI.ChatModel, chatModel)
	case "openrouter":
		set(&c.OpenRouter.Model, model)
		set(&c.OpenRouter.ChatModel, chatModel)
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("EDUDESIGN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("EDUDESIGN_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or EDUDESIGN_GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("EDUDESIGN_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// ForChat returns a copy of c whose primary model is the chat model of the
// selected provider.
func (c Config) ForChat() Config {
	out := c
	if c.Anthropic.ChatModel != "" {
		out.Anthropic.Model = c.Anthropic.ChatModel
	}
	if c.OpenAI.ChatModel != "" {
		out.OpenAI.Model = c.OpenAI.ChatModel
	}
	if c.Gemini.ChatModel != "" {
		out.Gemini.Model = c.Gemini.ChatModel
	}
	if c.OpenRouter.ChatModel != "" {
		out.OpenRouter.Model = c.OpenRouter.ChatModel
	}
	return out
}

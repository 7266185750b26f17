package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCanedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"name":"Curiosity"}`)},
	)

	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestMockProvider_Images(t *testing.T) {
	mock := NewMockProvider()
	mock.AddImage(MockImageResponse{Data: []byte("png-bytes")})
	mock.AddImage(MockImageResponse{})

	img, err := mock.GenerateImage(context.Background(), ImageRequest{Prompt: "a raft city", AspectRatio: "16:9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.MIMEType != "image/png" || string(img.Data) != "png-bytes" {
		t.Fatalf("unexpected image %+v", img)
	}

	_, err = mock.GenerateImage(context.Background(), ImageRequest{Prompt: "again"})
	if !errors.Is(err, ErrNoImageData) {
		t.Fatalf("expected ErrNoImageData, got: %v", err)
	}

	if mock.ImageCallCount() != 2 {
		t.Fatalf("expected 2 image calls, got %d", mock.ImageCallCount())
	}
	if mock.ImageCalls[0].AspectRatio != "16:9" {
		t.Fatalf("expected aspect ratio recorded, got %q", mock.ImageCalls[0].AspectRatio)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeLessonChat)
	if p := PurposeFrom(ctx); p != "lesson-chat" {
		t.Fatalf("expected 'lesson-chat', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "AIza-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAsImageGenerator(t *testing.T) {
	mock := NewMockProvider()
	if AsImageGenerator(mock) == nil {
		t.Fatal("mock provider should generate images")
	}
	if AsImageGenerator(WithLogging(mock, nil)) == nil {
		t.Fatal("logging decorator should forward image support")
	}

	textOnly := &OpenAIProvider{model: "gpt-4o"}
	if AsImageGenerator(textOnly) != nil {
		t.Fatal("openai provider should not generate images")
	}
	if AsImageGenerator(WithLogging(textOnly, nil)) != nil {
		t.Fatal("decorated text-only provider should not generate images")
	}
	if AsImageGenerator(NewUnconfiguredProvider(errors.New("no key"))) != nil {
		t.Fatal("unconfigured provider should not generate images")
	}
}

func TestUnconfiguredProvider(t *testing.T) {
	reason := errors.New("GEMINI_API_KEY is not set")
	providers := UnconfiguredProviders(reason)

	_, err := providers.Design.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
	if !errors.Is(err, reason) {
		t.Fatalf("expected reason to be wrapped, got: %v", err)
	}
	if providers.Images != nil {
		t.Fatal("expected no image generator")
	}
}

func TestNewProviders_Mock(t *testing.T) {
	providers, err := NewProviders(context.Background(), Config{Provider: "mock"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if providers.Design.ModelID() != "mock" || providers.Chat.ModelID() != "mock" {
		t.Fatalf("unexpected models %q / %q", providers.Design.ModelID(), providers.Chat.ModelID())
	}
	if providers.Images == nil {
		t.Fatal("expected mock image generator")
	}
}

func TestNewProviders_InvalidConfig(t *testing.T) {
	if _, err := NewProviders(context.Background(), Config{Provider: "openai"}, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestConfig_ForChat(t *testing.T) {
	cfg := DefaultConfig()
	chat := cfg.ForChat()

	if chat.Gemini.Model != "gemini-flash" {
		t.Fatalf("expected chat model gemini-flash, got %q", chat.Gemini.Model)
	}
	if chat.Anthropic.Model != "claude-haiku" {
		t.Fatalf("expected chat model claude-haiku, got %q", chat.Anthropic.Model)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("ForChat must not modify the receiver, got %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, env := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(env, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("unexpected discovery %+v", cfg)
	}

	// API_KEY is a Gemini key and wins over the other providers.
	t.Setenv("API_KEY", "AIza-plain")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "AIza-plain" {
		t.Fatalf("unexpected discovery %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("EDUDESIGN_LLM_PROVIDER", "openai")
	t.Setenv("EDUDESIGN_OPENAI_API_KEY", "sk-env")
	t.Setenv("EDUDESIGN_OPENAI_MODEL", "gpt-4.1")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-env" || cfg.OpenAI.Model != "gpt-4.1" {
		t.Fatalf("unexpected config %+v", cfg.OpenAI)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLookupCost(t *testing.T) {
	if LookupCost("gemini-3-pro-preview") == nil {
		t.Fatal("expected pricing for gemini-3-pro-preview")
	}
	alias := LookupCost("gemini-flash")
	direct := LookupCost("gemini-3-flash-preview")
	if alias == nil || direct == nil || *alias != *direct {
		t.Fatalf("alias pricing mismatch: %v vs %v", alias, direct)
	}
	if LookupCost("totally-unknown-model") != nil {
		t.Fatal("expected nil for unknown model")
	}

	cost, ok := EstimateCost("gemini-3-pro-preview", Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000})
	if !ok || cost != 14 {
		t.Fatalf("expected $14, got %v (%v)", cost, ok)
	}
}

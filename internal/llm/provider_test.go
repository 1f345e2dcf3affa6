package llm

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"a":1}`, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Text: `{"b":2}`},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Text)
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
	if resp2.Text != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Text)
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

func TestMockProvider_ReportsRequestedModel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "x"}, MockResponse{Text: "y"})
	mock.Model = "default-model"

	resp, _ := mock.Generate(context.Background(), Request{})
	if resp.Model != "default-model" {
		t.Fatalf("expected default-model, got %q", resp.Model)
	}
	resp, _ = mock.Generate(context.Background(), Request{Model: "override"})
	if resp.Model != "override" {
		t.Fatalf("expected override, got %q", resp.Model)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `{}`})

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

func TestMockProvider_Identity(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
	if mock.Name() != "Mock" {
		t.Fatalf("expected 'Mock', got %q", mock.Name())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := RequestIDFrom(ctx); id != "" {
		t.Fatalf("expected empty request id, got %q", id)
	}

	ctx = WithPurpose(ctx, "quiz-batch")
	ctx = WithRequestID(ctx, "req-1")
	if p := PurposeFrom(ctx); p != "quiz-batch" {
		t.Fatalf("expected 'quiz-batch', got %q", p)
	}
	if id := RequestIDFrom(ctx); id != "req-1" {
		t.Fatalf("expected 'req-1', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantErr    bool
		credential string
	}{
		{
			name:       "gemini without key",
			cfg:        Config{Provider: "gemini"},
			wantErr:    true,
			credential: "GEMINI_API_KEY",
		},
		{
			name: "gemini with key",
			cfg:  Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "k"}},
		},
		{
			name:       "fallback backend without key",
			cfg:        Config{Provider: "gemini", FallbackProvider: "openai", Gemini: GeminiConfig{APIKey: "k"}},
			wantErr:    true,
			credential: "OPENAI_API_KEY",
		},
		{
			name:       "openrouter without key",
			cfg:        Config{Provider: "openrouter"},
			wantErr:    true,
			credential: "OPENROUTER_API_KEY",
		},
		{
			name:       "anthropic without key",
			cfg:        Config{Provider: "anthropic"},
			wantErr:    true,
			credential: "ANTHROPIC_API_KEY",
		},
		{
			name: "mock needs no key",
			cfg:  Config{Provider: "mock"},
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
			if tt.credential == "" {
				return
			}
			var cfgErr *ErrConfiguration
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ErrConfiguration, got %T", err)
			}
			if cfgErr.Credential != tt.credential {
				t.Fatalf("credential = %q, want %q", cfgErr.Credential, tt.credential)
			}
			if cfgErr.Error() != "Missing "+tt.credential {
				t.Fatalf("message = %q", cfgErr.Error())
			}
		})
	}
}

func TestConfig_Models(t *testing.T) {
	cfg := Config{Provider: "gemini"}
	primary, fallback := cfg.Models()
	if primary != "gemini-2.5-flash" || fallback != "gemini-2.0-flash" {
		t.Fatalf("defaults = %q, %q", primary, fallback)
	}

	cfg = Config{Provider: "gemini", FallbackProvider: "openai", PrimaryModel: "gemini-2.5-pro"}
	primary, fallback = cfg.Models()
	if primary != "gemini-2.5-pro" || fallback != "gpt-4.1-mini" {
		t.Fatalf("mixed = %q, %q", primary, fallback)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SPACEQUIZ_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SPACEQUIZ_FALLBACK_MODEL", "gpt-4o")
	t.Setenv("SPACEQUIZ_UPSTREAM_TIMEOUT", "5s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("openai key = %q", cfg.OpenAI.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if _, fb := cfg.Models(); fb != "gpt-4o" {
		t.Errorf("fallback model = %q", fb)
	}
}

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		found bool
	}{
		{"gemini-2.5-flash", true},
		{"models/gemini-2.0-flash", true},
		{"google/gemini-2.0-flash-001", true},
		{"gpt-4o-mini", true},
		{"mock", false},
	}
	for _, tt := range tests {
		if got := LookupCost(tt.model) != nil; got != tt.found {
			t.Errorf("LookupCost(%q) found = %t, want %t", tt.model, got, tt.found)
		}
	}

	c := LookupCost("gemini-2.0-flash")
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Cost = %v, want 0.5", got)
	}
}

package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/spacequiz/internal/store"
)

// NewProvider creates the base Provider for one backend and default model.
func NewProvider(ctx context.Context, backend string, cfg Config, model string) (Provider, error) {
	switch backend {
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini, model)
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI, model)
	case "openrouter":
		return NewOpenRouterProvider(cfg.OpenRouter, model)
	case "anthropic":
		return NewAnthropicProvider(cfg.Anthropic, model)
	case "mock":
		m := NewMockProvider()
		m.Model = model
		return m, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", backend)
	}
}

// NewCascadeFromConfig builds the primary → fallback cascade described by
// cfg. When eventRepo is non-nil every attempt is recorded in the usage
// ledger.
//
// Wrapping order: caller → cascade → logging → base.
func NewCascadeFromConfig(ctx context.Context, cfg Config, eventRepo store.EventRepo) (*Cascade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	primaryModel, fallbackModel := cfg.Models()

	primary, err := NewProvider(ctx, cfg.Provider, cfg, primaryModel)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// The same client serves both attempts when the backend is shared.
	fallback := primary
	if fb := cfg.fallbackProvider(); fb != cfg.Provider {
		fallback, err = NewProvider(ctx, fb, cfg, fallbackModel)
		if err != nil {
			return nil, fmt.Errorf("initializing %s provider: %w", fb, err)
		}
	}

	if eventRepo != nil {
		shared := fallback == primary
		primary = WithLogging(primary, eventRepo)
		if shared {
			fallback = primary
		} else {
			fallback = WithLogging(fallback, eventRepo)
		}
	}

	c := NewCascade(
		Attempt{Provider: primary, Model: primaryModel},
		Attempt{Provider: fallback, Model: fallbackModel},
	)
	c.AttemptTimeout = cfg.Timeout
	return c, nil
}

package llm

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Credential environment variables. ErrConfiguration names one of these.
const (
	envGeminiKey     = "GEMINI_API_KEY"
	envOpenAIKey     = "OPENAI_API_KEY"
	envOpenRouterKey = "OPENROUTER_API_KEY"
	envAnthropicKey  = "ANTHROPIC_API_KEY"
)

// Config holds the upstream provider configuration for the generation
// cascade: one primary and one fallback attempt.
type Config struct {
	// Provider selects the primary backend.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string `env:"SPACEQUIZ_LLM_PROVIDER" envDefault:"gemini"`

	// FallbackProvider selects the fallback backend. Empty means Provider.
	FallbackProvider string `env:"SPACEQUIZ_FALLBACK_PROVIDER"`

	// PrimaryModel is the default primary model; requests may override it.
	// Empty means the backend's default.
	PrimaryModel string `env:"SPACEQUIZ_PRIMARY_MODEL"`

	// FallbackModel is the fixed fallback model. Empty means the backend's
	// default fallback.
	FallbackModel string `env:"SPACEQUIZ_FALLBACK_MODEL"`

	// Timeout bounds each upstream attempt. Zero disables the bound.
	Timeout time.Duration `env:"SPACEQUIZ_UPSTREAM_TIMEOUT" envDefault:"45s"`

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string `env:"GEMINI_API_KEY"`
	BaseURL string `env:"SPACEQUIZ_GEMINI_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"SPACEQUIZ_OPENAI_BASE_URL"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	BaseURL string `env:"SPACEQUIZ_OPENROUTER_BASE_URL"` // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `env:"ANTHROPIC_API_KEY"`
	BaseURL string `env:"SPACEQUIZ_ANTHROPIC_BASE_URL"`
}

// defaultModels holds the (primary, fallback) model pair per backend.
var defaultModels = map[string][2]string{
	"gemini":     {"gemini-2.5-flash", "gemini-2.0-flash"},
	"openai":     {"gpt-4o-mini", "gpt-4.1-mini"},
	"openrouter": {"google/gemini-2.5-flash", "google/gemini-2.0-flash-001"},
	"anthropic":  {"claude-haiku", "claude-sonnet"},
	"mock":       {"mock", "mock-fallback"},
}

// DefaultConfig returns a Config with the same defaults ConfigFromEnv
// applies when no variables are set.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Timeout:  45 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// fallbackProvider returns the backend used for the fallback attempt.
func (c Config) fallbackProvider() string {
	if c.FallbackProvider != "" {
		return c.FallbackProvider
	}
	return c.Provider
}

// Models returns the effective primary and fallback model IDs.
func (c Config) Models() (primary, fallback string) {
	primary = c.PrimaryModel
	if primary == "" {
		primary = defaultModels[c.Provider][0]
	}
	fallback = c.FallbackModel
	if fallback == "" {
		fallback = defaultModels[c.fallbackProvider()][1]
	}
	return primary, fallback
}

// Validate checks that both cascade backends are known and have their
// credentials. A missing credential yields *ErrConfiguration.
func (c Config) Validate() error {
	for _, name := range []string{c.Provider, c.fallbackProvider()} {
		if err := c.validateBackend(name); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) validateBackend(name string) error {
	switch name {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return &ErrConfiguration{Credential: envGeminiKey}
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return &ErrConfiguration{Credential: envOpenAIKey}
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return &ErrConfiguration{Credential: envOpenRouterKey}
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return &ErrConfiguration{Credential: envAnthropicKey}
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", name)
	}
	return nil
}

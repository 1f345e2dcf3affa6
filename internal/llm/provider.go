package llm

import (
	"context"
)

// Provider is the core abstraction for upstream text generation.
// Consumers call Generate with a Request and receive the model's raw text.
type Provider interface {
	// Generate sends a prompt to the upstream model and returns its output.
	// The returned text is not validated; callers normalize it themselves.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier used when Request.Model is empty.
	ModelID() string

	// Name returns the human-readable provider name, e.g. "Gemini".
	Name() string
}

// Request describes what to send to the upstream model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation history. Quiz generation is single-turn,
	// so this normally holds the user instructions only.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64

	// Model overrides the provider's configured model when non-empty.
	Model string

	// JSON asks the provider for its native JSON output mode, where one
	// exists. The output is still treated as untrusted text.
	JSON bool
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

// Response holds the upstream output.
type Response struct {
	// Text is the generated output exactly as the model produced it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// Provider is the name of the provider that served the request.
	Provider string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// modelFor picks the request override or falls back to the provider default.
func modelFor(req Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}

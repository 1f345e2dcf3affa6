package quizgen

import (
	"context"
	"fmt"

	"github.com/abhisek/spacequiz/internal/llm"
)

// Purpose tags every batch request in the usage ledger.
const Purpose = "quiz-batch"

// LLMGenerator implements Generator on top of an llm.Provider, normally an
// *llm.Cascade.
type LLMGenerator struct {
	provider llm.Provider
}

// New creates a new LLMGenerator with the given provider.
func New(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider}
}

// Generate builds the prompt for input.Difficulty, asks the provider once
// and normalizes the text it returns. Provider failures are returned
// wrapped; normalization failures are *MalformedResponseError.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Result, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	prompt := BuildPrompt(input.Difficulty)
	req := llm.Request{
		System: prompt.System,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt.User},
		},
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
		Model:       input.Model,
		JSON:        true,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	batch, err := Normalize(resp.Text)
	if err != nil {
		return nil, err
	}

	return &Result{Batch: batch, ModelUsed: resp.Model}, nil
}

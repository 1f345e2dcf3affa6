package quizgen

import (
	"context"

	"github.com/abhisek/spacequiz/internal/quiz"
)

// Generator produces batches of space-weather quiz questions.
type Generator interface {
	// Generate produces one normalized batch for the given input.
	// An empty batch is a valid result.
	Generate(ctx context.Context, input GenerateInput) (*Result, error)
}

// GenerateInput holds everything needed to request one batch.
type GenerateInput struct {
	// Difficulty selects the prompt wording and temperature.
	Difficulty quiz.Difficulty

	// Model overrides the primary model for this request only.
	// Empty means the configured default.
	Model string
}

// Result is a normalized batch and the model that produced it.
type Result struct {
	Batch quiz.Batch

	// ModelUsed identifies the model that actually served the request,
	// which is the fallback model when the primary failed.
	ModelUsed string
}

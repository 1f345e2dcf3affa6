package quizgen

import (
	"fmt"

	"github.com/abhisek/spacequiz/internal/quiz"
)

// MaxTokens is the fixed output-token ceiling for every batch request.
const MaxTokens = 1024

const systemPrompt = `You are generating a batch of 5 multiple-choice quiz questions about space weather for kids/teens.
Return STRICT JSON only. Do NOT include markdown formatting.
Each question must have:
 - id: string (unique within the batch)
 - question: string
 - options: array of 4 short strings
 - correctIndex: integer between 0-3
 - explanation: string (one concise sentence)

Difficulty levels:
 - easy: basic facts and definitions
 - medium: cause/effect and relationships
 - hard: reasoning, comparisons, or scenarios

Topic scope: solar wind, solar flares, CMEs, auroras, magnetosphere, historical events (e.g., Carrington), impacts on tech (satellites, power grids, GPS), safety/resilience.

Output schema: { questions: Question[] }`

// Prompt is the complete upstream request for one batch.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

var temperatures = map[quiz.Difficulty]float64{
	quiz.Easy:   0.4,
	quiz.Medium: 0.6,
	quiz.Hard:   0.8,
}

// BuildPrompt returns the prompt and generation parameters for d.
// Out-of-range values are treated as easy.
func BuildPrompt(d quiz.Difficulty) Prompt {
	if !d.Valid() {
		d = quiz.Easy
	}
	return Prompt{
		System:      systemPrompt,
		User:        buildUserMessage(d),
		Temperature: temperatures[d],
		MaxTokens:   MaxTokens,
	}
}

func buildUserMessage(d quiz.Difficulty) string {
	return fmt.Sprintf("Create %d %s questions. Ensure options are plausible, unique, and only one is correct. "+
		"Keep wording friendly and concise.\n\nRespond with JSON only.", quiz.MaxBatchSize, d)
}

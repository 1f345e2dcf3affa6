package quizgen

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/spacequiz/internal/llm"
	"github.com/abhisek/spacequiz/internal/quiz"
)

const validBatch = `{"questions":[
	{"id":"1","question":"What causes auroras?","options":["Solar wind particles","Moonlight","Volcanoes","Clouds"],"correctIndex":0,"explanation":"Charged particles excite gases in the upper atmosphere."},
	{"id":"2","question":"What does CME stand for?","options":["Coronal mass ejection","Cosmic meteor event","Core magnetic emission","Comet mass entry"],"correctIndex":0,"explanation":"A CME is a large release of plasma from the Sun."}
]}`

func TestLLMGenerator_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validBatch})
	mock.Model = "gemini-2.5-flash"
	gen := New(mock)

	res, err := gen.Generate(context.Background(), GenerateInput{Difficulty: quiz.Hard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Batch.Len() != 2 {
		t.Fatalf("expected 2 questions, got %d", res.Batch.Len())
	}
	if res.ModelUsed != "gemini-2.5-flash" {
		t.Fatalf("model used = %q", res.ModelUsed)
	}

	req := mock.Calls[0]
	if req.Temperature != 0.8 || req.MaxTokens != MaxTokens || !req.JSON {
		t.Fatalf("unexpected request parameters: %+v", req)
	}
	if req.System != systemPrompt {
		t.Fatal("system prompt not sent")
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected a single user message, got %+v", req.Messages)
	}
}

func TestLLMGenerator_ModelOverride(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validBatch})
	gen := New(mock)

	res, err := gen.Generate(context.Background(), GenerateInput{Difficulty: quiz.Easy, Model: "gemini-2.5-pro"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Calls[0].Model != "gemini-2.5-pro" {
		t.Fatalf("override not forwarded, got %q", mock.Calls[0].Model)
	}
	if res.ModelUsed != "gemini-2.5-pro" {
		t.Fatalf("model used = %q", res.ModelUsed)
	}
}

func TestLLMGenerator_ThroughCascadeFallback(t *testing.T) {
	primary := llm.NewMockProvider(llm.MockResponse{Err: errors.New("503 from upstream")})
	fallback := llm.NewMockProvider(llm.MockResponse{Text: validBatch})
	cascade := llm.NewCascade(
		llm.Attempt{Provider: primary, Model: "gemini-2.5-flash"},
		llm.Attempt{Provider: fallback, Model: "gemini-2.0-flash"},
	)

	res, err := New(cascade).Generate(context.Background(), GenerateInput{Difficulty: quiz.Medium})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ModelUsed != "gemini-2.0-flash" {
		t.Fatalf("model used = %q, want fallback", res.ModelUsed)
	}
	if primary.Calls[0].System != fallback.Calls[0].System || primary.Calls[0].Temperature != fallback.Calls[0].Temperature {
		t.Fatal("fallback must receive the identical prompt")
	}
}

func TestLLMGenerator_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrUpstreamGeneration{}})
	_, err := New(mock).Generate(context.Background(), GenerateInput{})

	var upstream *llm.ErrUpstreamGeneration
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstreamGeneration in chain, got %v", err)
	}
}

func TestLLMGenerator_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"answer":"no questions here"}`})
	_, err := New(mock).Generate(context.Background(), GenerateInput{})

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Raw != `{"answer":"no questions here"}` {
		t.Fatalf("raw = %q", malformed.Raw)
	}
}

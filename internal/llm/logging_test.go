package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/spacequiz/internal/store"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "{}", Usage: Usage{InputTokens: 12, OutputTokens: 34}})
	p := WithLogging(mock, repo)

	ctx := WithRequestID(WithPurpose(context.Background(), "quiz-batch"), "req-7")
	if _, err := p.Generate(ctx, Request{Model: "gemini-2.5-flash"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if !e.Success || e.Model != "gemini-2.5-flash" || e.Purpose != "quiz-batch" || e.RequestID != "req-7" {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 12 || e.OutputTokens != 34 {
		t.Fatalf("unexpected tokens: %+v", e)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, repo)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	e := repo.events[0]
	if e.Success || e.ErrorMessage != "boom" || e.Model != "mock" {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestLoggingProvider_LedgerErrorDoesNotFailGeneration(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: "{}"}), repo)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("ledger failure leaked into generation: %v", err)
	}
	if resp.Text != "{}" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestNewCascadeFromConfig_LogsBothAttempts(t *testing.T) {
	repo := &fakeEventRepo{}
	c, err := NewCascadeFromConfig(context.Background(), Config{Provider: "mock"}, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The mock backend starts with an empty queue, so both attempts fail.
	_, err = c.Generate(context.Background(), Request{})
	var upstream *ErrUpstreamGeneration
	if !errors.As(err, &upstream) {
		t.Fatalf("expected ErrUpstreamGeneration, got %T", err)
	}
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 ledger events, got %d", len(repo.events))
	}
	if repo.events[0].Model != "mock" || repo.events[1].Model != "mock-fallback" {
		t.Fatalf("models = %q, %q", repo.events[0].Model, repo.events[1].Model)
	}
}

package llm

import (
	"context"
	"log"
	"time"

	"github.com/abhisek/spacequiz/internal/store"
)

// LoggingProvider is a decorator that records every upstream call in the
// usage ledger. Only call metadata is recorded; prompts and generated
// questions are never stored.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with usage logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.Name(),
		Model:     modelFor(req, l.inner.ModelID()),
		Purpose:   PurposeFrom(ctx),
		RequestID: RequestIDFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.StopReason = resp.StopReason
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// A ledger failure never fails the generation. The caller's context may
	// already be done, so the write gets its own short deadline.
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if logErr := l.eventRepo.AppendLLMRequest(logCtx, data); logErr != nil {
		log.Printf("warning: failed to record LLM request: %v", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

package llm

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/abhisek/spacequiz/internal/llm")

// attemptLabels names cascade positions in traces and logs.
var attemptLabels = [2]string{"primary", "fallback"}

// Attempt is one entry of the cascade: a provider and the model to ask it for.
type Attempt struct {
	Provider Provider

	// Model is the model requested from Provider. Empty means the
	// provider's own default.
	Model string
}

func (a Attempt) model() string {
	if a.Model != "" {
		return a.Model
	}
	return a.Provider.ModelID()
}

// Cascade is the generation client: a fixed, ordered list of exactly two
// attempts tried sequentially. The second attempt runs only when the first
// fails, and never more than once, so a single Generate call makes at most
// two upstream calls.
type Cascade struct {
	attempts [2]Attempt

	// AttemptTimeout bounds each attempt separately. Zero means no bound
	// beyond the caller's context.
	AttemptTimeout time.Duration
}

// NewCascade creates a cascade from a primary and a fallback attempt.
func NewCascade(primary, fallback Attempt) *Cascade {
	return &Cascade{attempts: [2]Attempt{primary, fallback}}
}

// Generate asks the primary attempt and, on any failure, the fallback with
// the same prompt and parameters. A non-empty req.Model overrides the
// primary model only; the fallback model is fixed.
//
// When both attempts fail the error is *ErrUpstreamGeneration holding both
// causes. A context cancelled after the primary failure skips the fallback
// call and is recorded as its cause.
func (c *Cascade) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "llm.cascade")
	defer span.End()

	var failed []AttemptError
	for i, a := range c.attempts {
		model := a.model()
		if i == 0 && req.Model != "" {
			model = req.Model
		}

		if i > 0 && ctx.Err() != nil {
			failed = append(failed, AttemptError{Provider: a.Provider.Name(), Model: model, Err: ctx.Err()})
			break
		}

		attemptReq := req
		attemptReq.Model = model

		resp, err := c.try(ctx, attemptLabels[i], a.Provider, attemptReq)
		if err == nil {
			if resp.Model == "" {
				resp.Model = model
			}
			if resp.Provider == "" {
				resp.Provider = a.Provider.Name()
			}
			span.SetAttributes(
				attribute.String("llm.served_by", attemptLabels[i]),
				attribute.String("llm.model_used", resp.Model),
			)
			return resp, nil
		}
		failed = append(failed, AttemptError{Provider: a.Provider.Name(), Model: model, Err: err})
	}

	err := &ErrUpstreamGeneration{Attempts: failed}
	span.RecordError(err)
	span.SetStatus(codes.Error, "all attempts failed")
	return nil, err
}

func (c *Cascade) try(ctx context.Context, label string, p Provider, req Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "llm.attempt."+label,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", p.Name()),
			attribute.String("llm.model", req.Model),
		),
	)
	defer span.End()

	if c.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.AttemptTimeout)
		defer cancel()
	}

	resp, err := p.Generate(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

// ModelID returns the primary model.
func (c *Cascade) ModelID() string {
	return c.attempts[0].model()
}

// Name returns the primary provider's name.
func (c *Cascade) Name() string {
	return c.attempts[0].Provider.Name()
}

// FallbackModelID returns the fixed fallback model.
func (c *Cascade) FallbackModelID() string {
	return c.attempts[1].model()
}

package llm

import (
	"fmt"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down, unreachable, or
// rejected the request.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates the provider answered successfully but
// produced no text candidate.
type ErrEmptyResponse struct {
	Model string
}

func (e *ErrEmptyResponse) Error() string {
	return fmt.Sprintf("model %s returned no text", e.Model)
}

// ErrConfiguration indicates a required upstream credential is not set.
// It is fatal for the request and never retried.
type ErrConfiguration struct {
	// Credential is the environment variable that must be set.
	Credential string
}

func (e *ErrConfiguration) Error() string {
	return "Missing " + e.Credential
}

// AttemptError records why one cascade attempt failed.
type AttemptError struct {
	Provider string
	Model    string
	Err      error
}

func (e AttemptError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Provider, e.Model, e.Err)
}

func (e AttemptError) Unwrap() error { return e.Err }

// ErrUpstreamGeneration indicates both the primary and the fallback
// attempt failed. Every underlying error is kept, in attempt order.
type ErrUpstreamGeneration struct {
	Attempts []AttemptError
}

func (e *ErrUpstreamGeneration) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = a.Error()
	}
	return "upstream generation failed: " + strings.Join(parts, "; ")
}

func (e *ErrUpstreamGeneration) Unwrap() []error {
	errs := make([]error, len(e.Attempts))
	for i, a := range e.Attempts {
		errs[i] = a.Err
	}
	return errs
}

// Primary returns the first attempt's error, or nil.
func (e *ErrUpstreamGeneration) Primary() error {
	if len(e.Attempts) == 0 {
		return nil
	}
	return e.Attempts[0].Err
}

// Fallback returns the second attempt's error, or nil.
func (e *ErrUpstreamGeneration) Fallback() error {
	if len(e.Attempts) < 2 {
		return nil
	}
	return e.Attempts[1].Err
}

// PrimaryProvider names the provider of the first attempt.
func (e *ErrUpstreamGeneration) PrimaryProvider() string {
	if len(e.Attempts) == 0 {
		return ""
	}
	return e.Attempts[0].Provider
}

package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact match when non-empty

	Provider   string // exact match when non-empty
	FailedOnly bool   // only calls that returned an error
}

// LLMRequestEventData captures the data for a single upstream call.
// It holds call metadata only; prompts and generated questions are never
// recorded.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	RequestID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	StopReason   string
}

// LLMRequestEvent is a stored upstream call.
type LLMRequestEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageByPurpose aggregates calls for one purpose.
type LLMUsageByPurpose struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsageByModel aggregates calls for one model.
type LLMUsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to the usage ledger.
type EventRepo interface {
	// AppendLLMRequest records an upstream call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	events := []LLMRequestEventData{
		{Provider: "Gemini", Model: "gemini-2.5-flash", Purpose: "quiz-batch", RequestID: "r1", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, StopReason: "end"},
		{Provider: "Gemini", Model: "gemini-2.5-flash", Purpose: "quiz-batch", RequestID: "r2", LatencyMs: 45000, Success: false, ErrorMessage: "provider unavailable"},
		{Provider: "Gemini", Model: "gemini-2.0-flash", Purpose: "quiz-batch", RequestID: "r2", InputTokens: 100, OutputTokens: 380, LatencyMs: 700, Success: true, StopReason: "end"},
		{Provider: "Mock", Model: "mock", Purpose: "cli-generate", Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	if all[0].Purpose != "cli-generate" {
		t.Errorf("expected newest first, got purpose %q", all[0].Purpose)
	}
	if !all[0].Timestamp.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("timestamp = %v", all[0].Timestamp)
	}

	failed := all[2]
	if failed.Success || failed.ErrorMessage != "provider unavailable" || failed.RequestID != "r2" {
		t.Errorf("unexpected failed event: %+v", failed)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2, Purpose: "quiz-batch"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 2 || limited[0].Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}

	windowed, err := repo.QueryLLMEvents(ctx, QueryOpts{From: base.Add(2 * time.Minute), To: base.Add(3 * time.Minute)})
	if err != nil {
		t.Fatalf("query window: %v", err)
	}
	if len(windowed) != 2 {
		t.Fatalf("got %d events in window, want 2", len(windowed))
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].ID})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("got %d events after id %d, want 1", len(after), all[1].ID)
	}

	failures, err := repo.QueryLLMEvents(ctx, QueryOpts{FailedOnly: true})
	if err != nil {
		t.Fatalf("query failures: %v", err)
	}
	if len(failures) != 1 || failures[0].RequestID != "r2" || failures[0].Success {
		t.Fatalf("unexpected failures: %+v", failures)
	}

	mock, err := repo.QueryLLMEvents(ctx, QueryOpts{Provider: "Mock"})
	if err != nil {
		t.Fatalf("query provider: %v", err)
	}
	if len(mock) != 1 || mock[0].Purpose != "cli-generate" {
		t.Fatalf("unexpected provider result: %+v", mock)
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	missing, err := repo.GetLLMEvent(ctx, 42)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "OpenAI", Model: "gpt-4o-mini", Purpose: "quiz-batch", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	all, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	e, err := repo.GetLLMEvent(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || e.Provider != "OpenAI" || !e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.5-flash", Purpose: "quiz-batch", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Model: "gemini-2.5-flash", Purpose: "quiz-batch", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: false},
		{Model: "gemini-2.0-flash", Purpose: "cli-generate", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	qb := byPurpose[1]
	if qb.Purpose != "quiz-batch" || qb.Calls != 2 || qb.Failures != 1 || qb.InputTokens != 40 || qb.OutputTokens != 60 || qb.AvgLatencyMs != 200 {
		t.Errorf("unexpected quiz-batch usage: %+v", qb)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gemini-2.5-flash" || byModel[1].Calls != 2 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "usage.db")
	t.Setenv("SPACEQUIZ_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("SPACEQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dataHome, "spacequiz", "usage.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

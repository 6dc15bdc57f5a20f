package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// testRecord builds a record with a deterministic ID and timestamp
// offset in minutes from a fixed base.
func testRecord(i int, model string) *ledger.UsageRecord {
	base := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	return &ledger.UsageRecord{
		ID:           fmt.Sprintf("rec-%03d", i),
		Timestamp:    base.Add(time.Duration(i) * time.Minute),
		Model:        model,
		Provider:     "anthropic",
		InputTokens:  1200,
		OutputTokens: 400,
		TotalTokens:  1600,
		CostUSD:      0.0032,
		PricingKnown: true,
	}
}

// TestJSONLStorage_AppendAndQuery tests basic append and read back.
func TestJSONLStorage_AppendAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	s, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, testRecord(i, "claude-haiku-4-5-20251001")); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	records, err := s.Query(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for i, r := range records {
		if want := fmt.Sprintf("rec-%03d", i); r.ID != want {
			t.Errorf("record %d ID = %q, want %q (append order lost)", i, r.ID, want)
		}
	}
}

// TestJSONLStorage_Reopen tests that records survive a reopen.
func TestJSONLStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	ctx := context.Background()

	s, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, testRecord(i, "gpt-5.2")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("count after reopen = %d, want 3", count)
	}
}

// TestJSONLStorage_CorruptLine tests that a damaged line is skipped and
// the intact records still load.
func TestJSONLStorage_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	ctx := context.Background()

	s, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.Append(ctx, testRecord(i, "gpt-5.2")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	s.Close()

	// Damage the file with a truncated line.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open for damage: %v", err)
	}
	f.WriteString("{\"id\": \"rec-bro")
	f.Close()

	reopened, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("reopen after damage: %v", err)
	}
	defer reopened.Close()

	count, err := reopened.Count(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2 intact records", count)
	}
}

// TestJSONLStorage_MissingFile tests first-run behavior.
func TestJSONLStorage_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "usage.jsonl")

	s, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("NewJSONLStorage on missing file: %v", err)
	}
	defer s.Close()

	count, err := s.Count(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh ledger count = %d, want 0", count)
	}

	// First append creates the directory and file.
	if err := s.Append(context.Background(), testRecord(0, "gpt-5.2")); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("ledger file not created: %v", err)
	}
}

// TestJSONLStorage_QueryFilters tests window, model, and limit filters.
func TestJSONLStorage_QueryFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.jsonl")
	ctx := context.Background()

	s, err := NewJSONLStorage(path)
	if err != nil {
		t.Fatalf("NewJSONLStorage: %v", err)
	}
	defer s.Close()

	for i := 0; i < 10; i++ {
		model := "claude-haiku-4-5-20251001"
		if i%2 == 0 {
			model = "gpt-5.2"
		}
		if err := s.Append(ctx, testRecord(i, model)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	byModel, err := s.Query(ctx, &ledger.Query{Model: "gpt-5.2"})
	if err != nil {
		t.Fatalf("Query by model: %v", err)
	}
	if len(byModel) != 5 {
		t.Errorf("model filter returned %d, want 5", len(byModel))
	}

	start := time.Date(2026, 8, 15, 10, 5, 0, 0, time.UTC)
	windowed, err := s.Query(ctx, &ledger.Query{Start: &start})
	if err != nil {
		t.Fatalf("Query by window: %v", err)
	}
	if len(windowed) != 5 {
		t.Errorf("window filter returned %d, want 5 (start inclusive)", len(windowed))
	}

	recent, err := s.Query(ctx, &ledger.Query{Limit: 3, Descending: true})
	if err != nil {
		t.Fatalf("Query descending: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("limit returned %d, want 3", len(recent))
	}
	if recent[0].ID != "rec-009" {
		t.Errorf("newest first should be rec-009, got %s", recent[0].ID)
	}
}

package storage

import (
	"context"
	"testing"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// TestMemoryStorage_AppendAndQuery tests basic append and read back.
func TestMemoryStorage_AppendAndQuery(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if err := s.Append(ctx, testRecord(i, "claude-haiku-4-5-20251001")); err != nil {
			t.Fatalf("Append(%d): %v", i, err)
		}
	}

	records, err := s.Query(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	if records[0].ID != "rec-000" || records[3].ID != "rec-003" {
		t.Error("append order not preserved")
	}
}

// TestMemoryStorage_CopiesOnAppend tests that mutating the caller's
// record after Append does not change the stored one.
func TestMemoryStorage_CopiesOnAppend(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	ctx := context.Background()
	rec := testRecord(0, "gpt-5.2")
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rec.CostUSD = 999

	records, err := s.Query(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if records[0].CostUSD == 999 {
		t.Error("stored record shares memory with caller's record")
	}
}

// TestMemoryStorage_Count tests the filtered count.
func TestMemoryStorage_Count(t *testing.T) {
	s := NewMemoryStorage()
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		model := "claude-haiku-4-5-20251001"
		if i < 2 {
			model = "gpt-5.2"
		}
		if err := s.Append(ctx, testRecord(i, model)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	count, err := s.Count(ctx, &ledger.Query{Model: "gpt-5.2"})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

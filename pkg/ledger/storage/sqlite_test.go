package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// createTempDB creates a temporary SQLite ledger for testing.
func createTempDB(t *testing.T) (*SQLiteStorage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "usage.db")
	config := &SQLiteConfig{
		Path:         dbPath,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}

	s, err := NewSQLiteStorage(config)
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	return s, dbPath
}

// TestSQLiteStorage_Initialize tests database creation.
func TestSQLiteStorage_Initialize(t *testing.T) {
	s, dbPath := createTempDB(t)
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

// TestSQLiteStorage_AppendAndQuery tests the round trip including
// optional fields.
func TestSQLiteStorage_AppendAndQuery(t *testing.T) {
	s, _ := createTempDB(t)
	defer s.Close()

	ctx := context.Background()

	rec := testRecord(0, "claude-haiku-4-5-20251001")
	rec.TaskLabel = "summarize"
	rec.SessionID = "sess-1"
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// One without optional fields.
	if err := s.Append(ctx, testRecord(1, "gpt-5.2")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := s.Query(ctx, &ledger.Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	got := records[0]
	if got.ID != rec.ID || got.Model != rec.Model || got.Provider != rec.Provider {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.CostUSD != rec.CostUSD || !got.PricingKnown {
		t.Errorf("cost fields lost: %+v", got)
	}
	if got.TaskLabel != "summarize" || got.SessionID != "sess-1" {
		t.Errorf("optional fields lost: %+v", got)
	}
	if records[1].TaskLabel != "" || records[1].SessionID != "" {
		t.Errorf("absent optional fields should be empty: %+v", records[1])
	}
}

// TestSQLiteStorage_WindowAndCount tests half-open window semantics in
// SQL and the count query.
func TestSQLiteStorage_WindowAndCount(t *testing.T) {
	s, _ := createTempDB(t)
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if err := s.Append(ctx, testRecord(i, "claude-haiku-4-5-20251001")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	start := time.Date(2026, 8, 15, 10, 2, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 10, 5, 0, 0, time.UTC)
	records, err := s.Query(ctx, &ledger.Query{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// 10:02, 10:03, 10:04; the end bound is exclusive.
	if len(records) != 3 {
		t.Errorf("window returned %d records, want 3", len(records))
	}

	count, err := s.Count(ctx, &ledger.Query{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

// TestSQLiteStorage_Descending tests newest-first ordering with limit.
func TestSQLiteStorage_Descending(t *testing.T) {
	s, _ := createTempDB(t)
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, testRecord(i, "gpt-5.2")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := s.Query(ctx, &ledger.Query{Limit: 2, Descending: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "rec-004" || records[1].ID != "rec-003" {
		t.Errorf("descending order wrong: %s, %s", records[0].ID, records[1].ID)
	}
}

// TestSQLiteStorage_Reopen tests persistence across close and reopen.
func TestSQLiteStorage_Reopen(t *testing.T) {
	s, dbPath := createTempDB(t)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, testRecord(i, "gpt-5.2")); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteStorage(&SQLiteConfig{
		Path:         dbPath,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	})
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

// TestSQLiteStorage_CorruptFile tests that a damaged database is set
// aside and the ledger degrades to empty instead of failing.
func TestSQLiteStorage_CorruptFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "usage.db")
	if err := os.WriteFile(dbPath, []byte("this is not a sqlite database at all"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	s, err := NewSQLiteStorage(&SQLiteConfig{
		Path:         dbPath,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewSQLiteStorage on corrupt file: %v", err)
	}
	defer s.Close()

	count, err := s.Count(context.Background(), &ledger.Query{})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("corrupt ledger should degrade to empty, got %d records", count)
	}

	if _, err := os.Stat(dbPath + ".corrupt"); err != nil {
		t.Errorf("damaged file should be set aside: %v", err)
	}
}

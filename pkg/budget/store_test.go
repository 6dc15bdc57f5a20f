package budget

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestSaveAndLoad tests the YAML round trip.
func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.yaml")

	want := &Config{
		DailyUSD:       1.00,
		MonthlyUSD:     20.00,
		PerCallUSD:     0.25,
		AlertAtPercent: 90,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

// TestLoad_MissingFile tests the first-run default.
func TestLoad_MissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if *got != *DefaultConfig() {
		t.Errorf("missing file should yield defaults, got %+v", got)
	}
}

// TestLoad_CorruptFile tests that a damaged file degrades to defaults.
func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.yaml")
	if err := os.WriteFile(path, []byte("daily_usd: [not, a, number"), 0o644); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load on corrupt file: %v", err)
	}
	if *got != *DefaultConfig() {
		t.Errorf("corrupt file should yield defaults, got %+v", got)
	}
}

// TestAlertLog_AppendAndReload tests durable alert persistence.
func TestAlertLog_AppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.jsonl")

	l, err := OpenAlertLog(path)
	if err != nil {
		t.Fatalf("OpenAlertLog: %v", err)
	}

	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	for i, severity := range []Severity{SeverityWarning, SeverityExceeded} {
		err := l.Append(Alert{
			ID:        string(rune('a' + i)),
			Timestamp: now,
			Scope:     ScopeDaily,
			Severity:  severity,
			LimitUSD:  1,
			SpendUSD:  0.9,
			Percent:   90,
			Message:   "test",
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reloaded, err := OpenAlertLog(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reloaded.Close()

	alerts := reloaded.List()
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts after reload, want 2", len(alerts))
	}
	if alerts[0].Severity != SeverityWarning || alerts[1].Severity != SeverityExceeded {
		t.Error("alert order not preserved")
	}
}

// TestAlertLog_CorruptLine tests that damaged lines are skipped.
func TestAlertLog_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts.jsonl")
	content := `{"id":"a","scope":"daily","severity":"warning"}
{"id": "torn wri
{"id":"b","scope":"daily","severity":"exceeded"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l, err := OpenAlertLog(path)
	if err != nil {
		t.Fatalf("OpenAlertLog: %v", err)
	}
	defer l.Close()

	alerts := l.List()
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2 intact", len(alerts))
	}
	if alerts[0].ID != "a" || alerts[1].ID != "b" {
		t.Error("intact alerts lost")
	}
}

package cli

import (
	"strings"
	"testing"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// TestParseFormat tests flag validation.
func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "csv"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

// TestWriteRecordsCSV tests header and row shape.
func TestWriteRecordsCSV(t *testing.T) {
	records := []*ledger.UsageRecord{
		{
			Timestamp:    time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC),
			Model:        "claude-haiku-4-5-20251001",
			Provider:     "anthropic",
			InputTokens:  1200,
			OutputTokens: 400,
			TotalTokens:  1600,
			CostUSD:      0.0032,
			PricingKnown: true,
			TaskLabel:    "summarize",
		},
	}

	var b strings.Builder
	if err := WriteRecordsCSV(&b, records); err != nil {
		t.Fatalf("WriteRecordsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one row", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,model,provider") {
		t.Errorf("header wrong: %q", lines[0])
	}
	if !strings.Contains(lines[1], "claude-haiku-4-5-20251001") || !strings.Contains(lines[1], "0.0032") {
		t.Errorf("row wrong: %q", lines[1])
	}
}

// TestWriteJSON tests the JSON listing shape.
func TestWriteJSON(t *testing.T) {
	var b strings.Builder
	err := WriteJSON(&b, map[string]int{"calls": 4})
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(b.String(), "\"calls\": 4") {
		t.Errorf("output wrong: %q", b.String())
	}
}

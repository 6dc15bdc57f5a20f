package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatCSV is CSV output (record listings only).
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON, FormatCSV:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q: want text, json, or csv", s)
	}
}

// WriteJSON writes data as indented JSON.
func WriteJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// recordCSVHeader is the column order for CSV record listings.
var recordCSVHeader = []string{
	"timestamp", "model", "provider",
	"input_tokens", "output_tokens", "total_tokens",
	"cost_usd", "pricing_known", "task_label", "session_id",
}

// WriteRecordsCSV writes usage records as CSV with a header row.
func WriteRecordsCSV(w io.Writer, records []*ledger.UsageRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(recordCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Model,
			r.Provider,
			strconv.FormatInt(r.InputTokens, 10),
			strconv.FormatInt(r.OutputTokens, 10),
			strconv.FormatInt(r.TotalTokens, 10),
			strconv.FormatFloat(r.CostUSD, 'f', -1, 64),
			strconv.FormatBool(r.PricingKnown),
			r.TaskLabel,
			r.SessionID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

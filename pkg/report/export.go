package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/budget"
)

// Report is the exportable snapshot of usage over a window.
type Report struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     *Summary       `json:"summary"`
	ByModel     []GroupEntry   `json:"by_model"`
	ByProvider  []GroupEntry   `json:"by_provider"`
	Budget      *budget.Config `json:"budget,omitempty"`
	Alerts      []budget.Alert `json:"alerts,omitempty"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
}

// WriteJSON writes the report as indented JSON, atomically via a
// temporary file and rename.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace report: %w", err)
	}
	return nil
}

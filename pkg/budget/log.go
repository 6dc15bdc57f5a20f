package budget

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// AlertLog is an append-only JSONL log of emitted alerts. Appends are
// synced to disk before returning so alerts survive a crash.
type AlertLog struct {
	path   string
	file   *os.File
	alerts []Alert
	mu     sync.RWMutex
	logger *slog.Logger
}

// OpenAlertLog opens the alert log at path, loading any existing
// entries. Corrupt lines are skipped with a warning. A missing file is
// created on first append.
func OpenAlertLog(path string) (*AlertLog, error) {
	l := &AlertLog{
		path:   path,
		logger: slog.Default().With("component", "alert-log"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("failed to read alert log: %w", err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var alert Alert
		if err := json.Unmarshal(line, &alert); err != nil {
			l.logger.Warn("skipping corrupt alert log line",
				"path", path,
				"line", lineNo,
				"error", err)
			continue
		}
		l.alerts = append(l.alerts, alert)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan alert log: %w", err)
	}

	return l, nil
}

// Append writes an alert to the log and syncs it to disk.
func (l *AlertLog) Append(alert Alert) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
			return fmt.Errorf("failed to create alert log directory: %w", err)
		}
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open alert log: %w", err)
		}
		l.file = f
	}

	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	if _, err := l.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write alert: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync alert log: %w", err)
	}

	l.alerts = append(l.alerts, alert)
	return nil
}

// List returns all logged alerts in append order.
func (l *AlertLog) List() []Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Close closes the underlying file.
func (l *AlertLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// JSONLStorage implements ledger.Storage as an append-only file with
// one JSON-encoded record per line. The format is human-inspectable and
// every append is synced to disk before returning.
//
// Records are kept in memory in append order for queries; the file is
// only ever appended to.
type JSONLStorage struct {
	path    string
	file    *os.File
	records []*ledger.UsageRecord
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewJSONLStorage opens (or lazily creates) a JSONL ledger file.
// A missing file is an empty ledger. Lines that fail to parse are
// skipped with a warning rather than failing the open, so a partially
// corrupt ledger still yields every intact record.
func NewJSONLStorage(path string) (*JSONLStorage, error) {
	logger := slog.Default().With("component", "ledger.storage.jsonl")

	s := &JSONLStorage{
		path:   path,
		logger: logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	logger.Info("JSONL storage initialized", "path", path, "records", len(s.records))

	return s, nil
}

// load reads all existing records from the ledger file.
func (s *JSONLStorage) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ledger.NewStorageError("jsonl", "open", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record ledger.UsageRecord
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			continue
		}
		s.records = append(s.records, &record)
	}

	if err := scanner.Err(); err != nil {
		return ledger.NewStorageError("jsonl", "read", err)
	}

	if skipped > 0 {
		s.logger.Warn("skipped unparseable ledger lines",
			"path", s.path,
			"skipped", skipped,
			"loaded", len(s.records),
		)
	}

	return nil
}

// Append persists a usage record. The line is written and synced before
// Append returns.
func (s *JSONLStorage) Append(ctx context.Context, record *ledger.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		if dir := filepath.Dir(s.path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return ledger.NewStorageError("jsonl", "append", err)
			}
		}
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return ledger.NewStorageError("jsonl", "append", err)
		}
		s.file = f
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ledger.NewStorageError("jsonl", "marshal", err)
	}
	data = append(data, '\n')

	if _, err := s.file.Write(data); err != nil {
		return ledger.NewStorageError("jsonl", "append", err)
	}
	if err := s.file.Sync(); err != nil {
		return ledger.NewStorageError("jsonl", "sync", err)
	}

	recordCopy := *record
	s.records = append(s.records, &recordCopy)

	return nil
}

// Query retrieves records matching the query filters.
func (s *JSONLStorage) Query(ctx context.Context, q *ledger.Query) ([]*ledger.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filterRecords(s.records, q), nil
}

// Count returns the number of records matching the query filters.
func (s *JSONLStorage) Count(ctx context.Context, q *ledger.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, r := range s.records {
		if q.Matches(r) {
			count++
		}
	}
	return count, nil
}

// Close releases the ledger file handle.
func (s *JSONLStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	if err := s.file.Close(); err != nil {
		return ledger.NewStorageError("jsonl", "close", err)
	}
	s.file = nil
	return nil
}

// filterRecords applies a query against append-ordered records and
// returns copies in (timestamp, append order) order.
func filterRecords(records []*ledger.UsageRecord, q *ledger.Query) []*ledger.UsageRecord {
	results := []*ledger.UsageRecord{}
	for _, r := range records {
		if q.Matches(r) {
			recordCopy := *r
			results = append(results, &recordCopy)
		}
	}

	// Stable sort preserves append order for equal timestamps.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.Before(results[j].Timestamp)
	})
	if q.Descending {
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
	}

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	return results
}

package storage

import (
	"context"
	"sync"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// MemoryStorage implements ledger.Storage using an in-memory slice in
// append order. This implementation is intended for testing only.
type MemoryStorage struct {
	records []*ledger.UsageRecord
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Append persists a usage record to memory.
func (s *MemoryStorage) Append(ctx context.Context, record *ledger.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Copy to keep the ledger immutable under caller mutation.
	recordCopy := *record
	s.records = append(s.records, &recordCopy)

	return nil
}

// Query retrieves records matching the query filters.
func (s *MemoryStorage) Query(ctx context.Context, q *ledger.Query) ([]*ledger.UsageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return filterRecords(s.records, q), nil
}

// Count returns the number of records matching the query filters.
func (s *MemoryStorage) Count(ctx context.Context, q *ledger.Query) (int64, error) {
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

// Close releases the stored records.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

// Size returns the number of records in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

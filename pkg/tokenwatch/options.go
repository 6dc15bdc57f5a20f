package tokenwatch

import (
	"log/slog"
	"time"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// Option customizes a Monitor at construction time.
type Option func(*Monitor)

// WithClock overrides the time source, used in tests for deterministic
// windows and alert timestamps.
func WithClock(clock func() time.Time) Option {
	return func(m *Monitor) {
		m.clock = clock
	}
}

// WithStorage overrides the ledger backend the configuration would
// otherwise select.
func WithStorage(s ledger.Storage) Option {
	return func(m *Monitor) {
		m.storage = s
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Monitor) {
		m.logger = logger
	}
}

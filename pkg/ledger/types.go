package ledger

import (
	"context"
	"time"
)

// UsageRecord represents one completed API call recorded in the ledger.
// Records are immutable once appended.
type UsageRecord struct {
	// ID is a UUID v4 assigned at record time.
	ID string `json:"id"`

	// Timestamp is when the call was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Model is the model identifier as recorded.
	Model string `json:"model"`

	// Provider is the provider name derived from the price table,
	// or "unknown" for models absent from it.
	Provider string `json:"provider"`

	// InputTokens is the input (prompt) token count.
	InputTokens int64 `json:"input_tokens"`

	// OutputTokens is the output (completion) token count.
	OutputTokens int64 `json:"output_tokens"`

	// TotalTokens is InputTokens + OutputTokens.
	TotalTokens int64 `json:"total_tokens"`

	// CostUSD is the cost computed at record time. Immutable.
	CostUSD float64 `json:"cost_usd"`

	// PricingKnown reports whether the model was in the price table
	// when the record was created. When false, CostUSD is the
	// zero-cost fallback.
	PricingKnown bool `json:"pricing_known"`

	// TaskLabel is an optional free-text annotation.
	TaskLabel string `json:"task_label,omitempty"`

	// SessionID is an optional grouping key.
	SessionID string `json:"session_id,omitempty"`
}

// Query defines filter parameters for reading the ledger.
// Zero-valued fields do not filter.
type Query struct {
	// Start is the inclusive lower bound on Timestamp.
	Start *time.Time

	// End is the exclusive upper bound on Timestamp.
	End *time.Time

	// Model filters by exact model identifier.
	Model string

	// Provider filters by provider name.
	Provider string

	// SessionID filters by session grouping key.
	SessionID string

	// Limit caps the number of records returned. Zero means no cap.
	Limit int

	// Descending returns newest records first instead of the default
	// timestamp-ascending order.
	Descending bool
}

// Matches reports whether a record passes the query's filters.
// Window containment is half-open: Start <= Timestamp < End.
func (q *Query) Matches(r *UsageRecord) bool {
	if q.Start != nil && r.Timestamp.Before(*q.Start) {
		return false
	}
	if q.End != nil && !r.Timestamp.Before(*q.End) {
		return false
	}
	if q.Model != "" && r.Model != q.Model {
		return false
	}
	if q.Provider != "" && r.Provider != q.Provider {
		return false
	}
	if q.SessionID != "" && r.SessionID != q.SessionID {
		return false
	}
	return true
}

// Storage defines the interface for ledger storage backends.
// Implementations must be safe for concurrent use: Append is the sole
// mutation point and must be serialized so concurrent appends never
// interleave partial writes, and readers must see an append fully or
// not at all.
type Storage interface {
	// Append persists a usage record. The record must be durable
	// before Append returns.
	Append(ctx context.Context, record *UsageRecord) error

	// Query retrieves records matching the query filters, ordered by
	// timestamp with ties broken by append order (reversed when
	// Descending is set). Returns an empty slice if nothing matches.
	Query(ctx context.Context, q *Query) ([]*UsageRecord, error)

	// Count returns the number of records matching the query filters.
	Count(ctx context.Context, q *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

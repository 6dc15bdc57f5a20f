package adapter

import "fmt"

// Usage is the provider-neutral extraction result.
type Usage struct {
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Adapter extracts usage from one provider's raw response body.
type Adapter interface {
	// Provider returns the provider identifier.
	Provider() string

	// Extract parses a raw response body and returns the usage it
	// reports. Returns an AdapterError when required fields are
	// missing or malformed.
	Extract(raw []byte) (*Usage, error)
}

// AdapterError represents a response body an adapter could not extract
// usage from.
type AdapterError struct {
	Provider string
	Field    string
	Cause    error
}

func (e *AdapterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("adapter %s: field %q: %v", e.Provider, e.Field, e.Cause)
	}
	return fmt.Sprintf("adapter %s: field %q missing", e.Provider, e.Field)
}

func (e *AdapterError) Unwrap() error {
	return e.Cause
}

// NewAdapterError creates a new AdapterError.
func NewAdapterError(provider, field string, cause error) *AdapterError {
	return &AdapterError{Provider: provider, Field: field, Cause: cause}
}

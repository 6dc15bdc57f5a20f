package budget

import "fmt"

// ConfigError represents an invalid budget configuration value. The
// existing configuration is kept when a replacement fails validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("budget config field %q: %s", e.Field, e.Reason)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

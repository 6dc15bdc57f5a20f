package budget

import "time"

// Scope identifies which ceiling an alert refers to.
type Scope string

const (
	// ScopeDaily covers spend within the current calendar day.
	ScopeDaily Scope = "daily"
	// ScopeWeekly covers spend within the last 7 days.
	ScopeWeekly Scope = "weekly"
	// ScopeMonthly covers spend within the current calendar month.
	ScopeMonthly Scope = "monthly"
	// ScopePerCall covers the cost of a single recorded call.
	ScopePerCall Scope = "per_call"
)

// Severity indicates how far spend has progressed toward a ceiling.
type Severity string

const (
	// SeverityWarning means spend crossed the warning fraction of a ceiling.
	SeverityWarning Severity = "warning"
	// SeverityExceeded means spend reached or passed a ceiling.
	SeverityExceeded Severity = "exceeded"
)

// Config holds the budget ceilings. A zero ceiling means unset and is
// never evaluated.
type Config struct {
	// DailyUSD is the ceiling for spend within the current calendar day.
	// Default: 0 (unset)
	DailyUSD float64 `yaml:"daily_usd" json:"daily_usd"`

	// WeeklyUSD is the ceiling for spend within the last 7 days.
	// Default: 0 (unset)
	WeeklyUSD float64 `yaml:"weekly_usd" json:"weekly_usd"`

	// MonthlyUSD is the ceiling for spend within the current calendar month.
	// Default: 0 (unset)
	MonthlyUSD float64 `yaml:"monthly_usd" json:"monthly_usd"`

	// PerCallUSD is the ceiling for the cost of a single call.
	// Default: 0 (unset)
	PerCallUSD float64 `yaml:"per_call_usd" json:"per_call_usd"`

	// AlertAtPercent is the warning threshold as a percentage of each
	// ceiling. Default: 80
	AlertAtPercent float64 `yaml:"alert_at_percent" json:"alert_at_percent"`
}

// DefaultConfig returns a budget configuration with no ceilings set and
// the standard warning threshold.
func DefaultConfig() *Config {
	return &Config{
		AlertAtPercent: 80,
	}
}

// Alert records a single threshold crossing.
type Alert struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Scope     Scope     `json:"scope"`
	Severity  Severity  `json:"severity"`
	LimitUSD  float64   `json:"limit_usd"`
	SpendUSD  float64   `json:"spend_usd"`
	Percent   float64   `json:"percent"`
	Message   string    `json:"message"`
}

package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// windowScopes is the evaluation order for windowed ceilings.
var windowScopes = []Scope{ScopeDaily, ScopeWeekly, ScopeMonthly}

// Validate checks the configuration for invalid values. Ceilings must be
// non-negative and the warning threshold must lie in (0, 100].
func (c *Config) Validate() error {
	if c.DailyUSD < 0 {
		return NewConfigError("daily_usd", "must be non-negative")
	}
	if c.WeeklyUSD < 0 {
		return NewConfigError("weekly_usd", "must be non-negative")
	}
	if c.MonthlyUSD < 0 {
		return NewConfigError("monthly_usd", "must be non-negative")
	}
	if c.PerCallUSD < 0 {
		return NewConfigError("per_call_usd", "must be non-negative")
	}
	if c.AlertAtPercent <= 0 || c.AlertAtPercent > 100 {
		return NewConfigError("alert_at_percent", "must be in (0, 100]")
	}
	return nil
}

// ceiling returns the configured ceiling for a windowed scope.
func (c *Config) ceiling(scope Scope) float64 {
	switch scope {
	case ScopeDaily:
		return c.DailyUSD
	case ScopeWeekly:
		return c.WeeklyUSD
	case ScopeMonthly:
		return c.MonthlyUSD
	default:
		return 0
	}
}

// Evaluate compares spend per windowed scope against the configured
// ceilings and returns alerts in fixed scope order (daily, weekly,
// monthly). Scopes with an unset ceiling or no spend entry are skipped.
func (c *Config) Evaluate(spend map[Scope]float64, now time.Time) []Alert {
	var alerts []Alert
	for _, scope := range windowScopes {
		limit := c.ceiling(scope)
		if limit <= 0 {
			continue
		}
		observed, ok := spend[scope]
		if !ok {
			continue
		}
		if alert := c.check(scope, limit, observed, now); alert != nil {
			alerts = append(alerts, *alert)
		}
	}
	return alerts
}

// EvaluatePerCall checks a single call's cost against the per-call
// ceiling. Returns nil when the ceiling is unset or not crossed.
func (c *Config) EvaluatePerCall(costUSD float64, now time.Time) *Alert {
	if c.PerCallUSD <= 0 {
		return nil
	}
	return c.check(ScopePerCall, c.PerCallUSD, costUSD, now)
}

// check applies the two-threshold rule for one scope.
func (c *Config) check(scope Scope, limit, observed float64, now time.Time) *Alert {
	percent := observed / limit * 100

	var severity Severity
	switch {
	case observed >= limit:
		severity = SeverityExceeded
	case observed >= limit*c.AlertAtPercent/100:
		severity = SeverityWarning
	default:
		return nil
	}

	return &Alert{
		ID:        uuid.New().String(),
		Timestamp: now,
		Scope:     scope,
		Severity:  severity,
		LimitUSD:  limit,
		SpendUSD:  observed,
		Percent:   percent,
		Message:   alertMessage(scope, severity, observed, limit, percent),
	}
}

func alertMessage(scope Scope, severity Severity, observed, limit, percent float64) string {
	if severity == SeverityExceeded {
		return fmt.Sprintf("%s budget exceeded: $%.4f of $%.2f limit (%.1f%%)",
			scope, observed, limit, percent)
	}
	return fmt.Sprintf("%s budget warning: $%.4f of $%.2f limit (%.1f%%)",
		scope, observed, limit, percent)
}

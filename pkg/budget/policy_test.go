package budget

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

// TestEvaluate_DailyThresholds tests the two-threshold rule on an
// example daily ceiling of $1.00 with an 80% warning.
func TestEvaluate_DailyThresholds(t *testing.T) {
	cfg := &Config{DailyUSD: 1.00, AlertAtPercent: 80}

	tests := []struct {
		name         string
		spend        float64
		wantCount    int
		wantSeverity Severity
	}{
		{"below warning", 0.79, 0, ""},
		{"at warning threshold", 0.80, 1, SeverityWarning},
		{"between thresholds", 0.99, 1, SeverityWarning},
		{"at ceiling", 1.00, 1, SeverityExceeded},
		{"over ceiling", 1.50, 1, SeverityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := cfg.Evaluate(map[Scope]float64{ScopeDaily: tt.spend}, testNow)
			if len(alerts) != tt.wantCount {
				t.Fatalf("got %d alerts, want %d", len(alerts), tt.wantCount)
			}
			if tt.wantCount == 0 {
				return
			}
			a := alerts[0]
			if a.Severity != tt.wantSeverity {
				t.Errorf("severity = %s, want %s", a.Severity, tt.wantSeverity)
			}
			if a.Scope != ScopeDaily {
				t.Errorf("scope = %s, want daily", a.Scope)
			}
			if a.LimitUSD != 1.00 || a.SpendUSD != tt.spend {
				t.Errorf("alert amounts wrong: %+v", a)
			}
			if a.ID == "" || a.Message == "" {
				t.Error("alert missing ID or message")
			}
			if !a.Timestamp.Equal(testNow) {
				t.Errorf("timestamp = %v, want %v", a.Timestamp, testNow)
			}
		})
	}
}

// TestEvaluate_ScopeOrder tests that alerts come out in fixed order
// regardless of map iteration.
func TestEvaluate_ScopeOrder(t *testing.T) {
	cfg := &Config{DailyUSD: 1, WeeklyUSD: 1, MonthlyUSD: 1, AlertAtPercent: 80}
	spend := map[Scope]float64{
		ScopeMonthly: 2,
		ScopeDaily:   2,
		ScopeWeekly:  2,
	}

	for i := 0; i < 10; i++ {
		alerts := cfg.Evaluate(spend, testNow)
		if len(alerts) != 3 {
			t.Fatalf("got %d alerts, want 3", len(alerts))
		}
		if alerts[0].Scope != ScopeDaily || alerts[1].Scope != ScopeWeekly || alerts[2].Scope != ScopeMonthly {
			t.Fatalf("scope order wrong: %s, %s, %s",
				alerts[0].Scope, alerts[1].Scope, alerts[2].Scope)
		}
	}
}

// TestEvaluate_UnsetCeilings tests that zero ceilings never alert.
func TestEvaluate_UnsetCeilings(t *testing.T) {
	cfg := DefaultConfig()
	alerts := cfg.Evaluate(map[Scope]float64{
		ScopeDaily:   1000,
		ScopeWeekly:  1000,
		ScopeMonthly: 1000,
	}, testNow)
	if len(alerts) != 0 {
		t.Errorf("unset ceilings produced %d alerts", len(alerts))
	}
}

// TestEvaluatePerCall tests the single-call ceiling.
func TestEvaluatePerCall(t *testing.T) {
	cfg := &Config{PerCallUSD: 0.10, AlertAtPercent: 80}

	if a := cfg.EvaluatePerCall(0.05, testNow); a != nil {
		t.Errorf("cheap call should not alert, got %+v", a)
	}
	if a := cfg.EvaluatePerCall(0.08, testNow); a == nil || a.Severity != SeverityWarning {
		t.Errorf("call at warning threshold: got %+v", a)
	}
	if a := cfg.EvaluatePerCall(0.10, testNow); a == nil || a.Severity != SeverityExceeded {
		t.Errorf("call at ceiling: got %+v", a)
	}
	unset := &Config{AlertAtPercent: 80}
	if a := unset.EvaluatePerCall(100, testNow); a != nil {
		t.Errorf("unset per-call ceiling should not alert, got %+v", a)
	}
}

// TestValidate tests configuration validation.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults valid", *DefaultConfig(), false},
		{"ceilings valid", Config{DailyUSD: 1, MonthlyUSD: 20, AlertAtPercent: 80}, false},
		{"negative daily", Config{DailyUSD: -1, AlertAtPercent: 80}, true},
		{"negative per-call", Config{PerCallUSD: -0.1, AlertAtPercent: 80}, true},
		{"zero alert percent", Config{AlertAtPercent: 0}, true},
		{"alert percent over 100", Config{AlertAtPercent: 101}, true},
		{"alert percent at 100", Config{AlertAtPercent: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*ConfigError); !ok {
					t.Errorf("error should be *ConfigError, got %T", err)
				}
			}
		})
	}
}

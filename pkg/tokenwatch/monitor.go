package tokenwatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tokenwatch-hq/tokenwatch/pkg/adapter"
	"tokenwatch-hq/tokenwatch/pkg/budget"
	"tokenwatch-hq/tokenwatch/pkg/config"
	"tokenwatch-hq/tokenwatch/pkg/ledger"
	"tokenwatch-hq/tokenwatch/pkg/ledger/storage"
	"tokenwatch-hq/tokenwatch/pkg/pricing"
	"tokenwatch-hq/tokenwatch/pkg/report"
	"tokenwatch-hq/tokenwatch/pkg/telemetry/metrics"
)

// dashboardAlertCount caps how many recent alerts the dashboard shows.
const dashboardAlertCount = 5

// UsageInput describes one completed API call to record.
type UsageInput struct {
	// Model is the model identifier. Required.
	Model string

	// InputTokens is the input (prompt) token count. Must be >= 0.
	InputTokens int64

	// OutputTokens is the output (completion) token count. Must be >= 0.
	OutputTokens int64

	// TaskLabel is an optional free-text annotation.
	TaskLabel string

	// SessionID is an optional grouping key.
	SessionID string
}

// Monitor is the top-level usage and cost accounting facade.
type Monitor struct {
	cfg     *config.Config
	storage ledger.Storage
	metrics *metrics.UsageMetrics
	logger  *slog.Logger
	clock   func() time.Time

	budgetMu   sync.RWMutex
	budgetCfg  *budget.Config
	budgetPath string
	alertLog   *budget.AlertLog
}

// New creates a Monitor from the given configuration. The ledger
// backend, persisted budget, and alert log are opened here; a missing
// data directory is created on first write, not here.
func New(cfg *config.Config, opts ...Option) (*Monitor, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	m := &Monitor{
		cfg:        cfg,
		clock:      time.Now,
		budgetPath: cfg.BudgetPath(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default().With("component", "monitor")
	}

	if m.storage == nil {
		s, err := openStorage(cfg)
		if err != nil {
			return nil, err
		}
		m.storage = s
	}

	budgetCfg, err := budget.Load(m.budgetPath)
	if err != nil {
		m.storage.Close()
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	m.budgetCfg = budgetCfg

	alertLog, err := budget.OpenAlertLog(cfg.AlertLogPath())
	if err != nil {
		m.storage.Close()
		return nil, fmt.Errorf("failed to open alert log: %w", err)
	}
	m.alertLog = alertLog

	if cfg.Telemetry.Metrics.Enabled {
		m.metrics = metrics.NewUsageMetrics(cfg.Telemetry.Metrics)
	}

	m.logger.Debug("monitor initialized",
		"backend", cfg.Storage.Backend,
		"ledger", cfg.LedgerPath())

	return m, nil
}

func openStorage(cfg *config.Config) (ledger.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		sc := &storage.SQLiteConfig{
			Path:         cfg.LedgerPath(),
			MaxOpenConns: cfg.Storage.MaxOpenConns,
			MaxIdleConns: cfg.Storage.MaxIdleConns,
			WALMode:      cfg.Storage.WALMode,
			BusyTimeout:  cfg.Storage.BusyTimeout,
		}
		return storage.NewSQLiteStorage(sc)
	case config.BackendJSONL:
		return storage.NewJSONLStorage(cfg.LedgerPath())
	case config.BackendMemory:
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// RecordUsage prices a call, durably appends it to the ledger, updates
// metrics, and evaluates the budget. The returned alerts are the ones
// this call triggered; they are also persisted to the alert log. The
// record is never rejected for crossing a ceiling.
func (m *Monitor) RecordUsage(ctx context.Context, in *UsageInput) (*ledger.UsageRecord, []budget.Alert, error) {
	if in == nil {
		return nil, nil, fmt.Errorf("usage input must not be nil")
	}
	if in.Model == "" {
		return nil, nil, fmt.Errorf("model must not be empty")
	}
	if in.InputTokens < 0 || in.OutputTokens < 0 {
		return nil, nil, fmt.Errorf("token counts must be non-negative")
	}

	now := m.clock()
	est := pricing.EstimateCost(in.Model, in.InputTokens, in.OutputTokens)
	if !est.Known {
		m.logger.Warn("model not in price table, recording at zero cost",
			"model", in.Model)
	}

	record := &ledger.UsageRecord{
		ID:           uuid.New().String(),
		Timestamp:    now,
		Model:        in.Model,
		Provider:     est.Provider,
		InputTokens:  in.InputTokens,
		OutputTokens: in.OutputTokens,
		TotalTokens:  in.InputTokens + in.OutputTokens,
		CostUSD:      est.CostUSD,
		PricingKnown: est.Known,
		TaskLabel:    in.TaskLabel,
		SessionID:    in.SessionID,
	}

	if err := m.storage.Append(ctx, record); err != nil {
		return nil, nil, err
	}

	if m.metrics != nil {
		m.metrics.RecordCall(record.Provider, record.Model,
			record.InputTokens, record.OutputTokens, record.CostUSD)
	}

	alerts, err := m.evaluateBudget(ctx, record.CostUSD, now)
	if err != nil {
		// The record is already durable; budgeting is best effort.
		m.logger.Warn("budget evaluation failed", "error", err)
		return record, nil, nil
	}

	for _, alert := range alerts {
		if err := m.alertLog.Append(alert); err != nil {
			m.logger.Warn("failed to persist alert",
				"scope", alert.Scope,
				"error", err)
		}
		m.logger.Warn("budget alert",
			"scope", alert.Scope,
			"severity", alert.Severity,
			"spend_usd", alert.SpendUSD,
			"limit_usd", alert.LimitUSD)
	}

	return record, alerts, nil
}

// RecordResponse extracts usage from a raw provider response body and
// records it. Extraction failure surfaces as an AdapterError and
// nothing is written to the ledger.
func (m *Monitor) RecordResponse(ctx context.Context, a adapter.Adapter, raw []byte) (*ledger.UsageRecord, []budget.Alert, error) {
	usage, err := a.Extract(raw)
	if err != nil {
		return nil, nil, err
	}
	return m.RecordUsage(ctx, &UsageInput{
		Model:        usage.Model,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
	})
}

// evaluateBudget checks the per-call ceiling and every configured
// windowed ceiling against current ledger spend.
func (m *Monitor) evaluateBudget(ctx context.Context, costUSD float64, now time.Time) ([]budget.Alert, error) {
	m.budgetMu.RLock()
	cfg := m.budgetCfg
	m.budgetMu.RUnlock()

	var alerts []budget.Alert
	if alert := cfg.EvaluatePerCall(costUSD, now); alert != nil {
		alerts = append(alerts, *alert)
	}

	scopes := []struct {
		scope  budget.Scope
		limit  float64
		period string
	}{
		{budget.ScopeDaily, cfg.DailyUSD, ledger.PeriodToday},
		{budget.ScopeWeekly, cfg.WeeklyUSD, ledger.PeriodWeek},
		{budget.ScopeMonthly, cfg.MonthlyUSD, ledger.PeriodMonth},
	}

	spend := make(map[budget.Scope]float64)
	for _, s := range scopes {
		if s.limit <= 0 {
			continue
		}
		total, err := m.spendInPeriod(ctx, s.period, now)
		if err != nil {
			return nil, err
		}
		spend[s.scope] = total
		if m.metrics != nil {
			m.metrics.SetBudgetUtilization(string(s.scope), total/s.limit)
		}
	}

	alerts = append(alerts, cfg.Evaluate(spend, now)...)
	return alerts, nil
}

func (m *Monitor) spendInPeriod(ctx context.Context, period string, now time.Time) (float64, error) {
	window, err := ledger.Resolve(period, now)
	if err != nil {
		return 0, err
	}
	records, err := m.storage.Query(ctx, window.Query())
	if err != nil {
		return 0, err
	}
	var total float64
	for _, r := range records {
		total += r.CostUSD
	}
	return total, nil
}

// SetBudget validates, persists, and installs a new budget
// configuration. The replacement is all-or-nothing: on any error the
// previous configuration stays in effect.
func (m *Monitor) SetBudget(cfg *budget.Config) error {
	if cfg == nil {
		return budget.NewConfigError("config", "must not be nil")
	}
	if cfg.AlertAtPercent == 0 {
		cfg.AlertAtPercent = budget.DefaultConfig().AlertAtPercent
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := budget.Save(m.budgetPath, cfg); err != nil {
		return err
	}

	m.budgetMu.Lock()
	m.budgetCfg = cfg
	m.budgetMu.Unlock()
	return nil
}

// Budget returns a copy of the active budget configuration.
func (m *Monitor) Budget() *budget.Config {
	m.budgetMu.RLock()
	defer m.budgetMu.RUnlock()

	cfgCopy := *m.budgetCfg
	return &cfgCopy
}

// Alerts returns all persisted alerts in the order they were emitted.
func (m *Monitor) Alerts() []budget.Alert {
	return m.alertLog.List()
}

// GetSpend summarizes spend and token usage for a period ("today",
// "week", "month", "all", or "YYYY-MM-DD").
func (m *Monitor) GetSpend(ctx context.Context, period string) (*report.Summary, error) {
	records, err := m.recordsInPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	return report.Summarize(period, records), nil
}

// GetSpendByModel breaks a period's spend down by model, ordered by
// cost descending.
func (m *Monitor) GetSpendByModel(ctx context.Context, period string) ([]report.GroupEntry, error) {
	records, err := m.recordsInPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	return report.ByModel(records), nil
}

// GetSpendByProvider breaks a period's spend down by provider, ordered
// by cost descending.
func (m *Monitor) GetSpendByProvider(ctx context.Context, period string) ([]report.GroupEntry, error) {
	records, err := m.recordsInPeriod(ctx, period)
	if err != nil {
		return nil, err
	}
	return report.ByProvider(records), nil
}

func (m *Monitor) recordsInPeriod(ctx context.Context, period string) ([]*ledger.UsageRecord, error) {
	window, err := ledger.Resolve(period, m.clock())
	if err != nil {
		return nil, err
	}
	return m.storage.Query(ctx, window.Query())
}

// EstimateCost prices a hypothetical call without recording it.
func (m *Monitor) EstimateCost(model string, inputTokens, outputTokens int64) pricing.Estimate {
	return pricing.EstimateCost(model, inputTokens, outputTokens)
}

// CompareModels prices the given token mix across the whole price
// table, cheapest first.
func (m *Monitor) CompareModels(inputTokens, outputTokens int64) []pricing.Estimate {
	return pricing.CompareModels(inputTokens, outputTokens)
}

// OptimizationSuggestions derives cost-reduction hints from the current
// calendar month's usage. Output is deterministic for a given ledger.
func (m *Monitor) OptimizationSuggestions(ctx context.Context) ([]report.Suggestion, error) {
	records, err := m.recordsInPeriod(ctx, ledger.PeriodMonth)
	if err != nil {
		return nil, err
	}
	return report.Suggest(records), nil
}

// TotalCalls returns the number of records in the whole ledger without
// materializing them.
func (m *Monitor) TotalCalls(ctx context.Context) (int64, error) {
	return m.storage.Count(ctx, &ledger.Query{})
}

// RecentCalls returns the most recent records, newest first.
func (m *Monitor) RecentCalls(ctx context.Context, limit int) ([]*ledger.UsageRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	return m.storage.Query(ctx, &ledger.Query{Limit: limit, Descending: true})
}

// FormatDashboard renders the terminal dashboard for today's usage,
// configured budgets, and recent alerts.
func (m *Monitor) FormatDashboard(ctx context.Context) (string, error) {
	todayRecords, err := m.recordsInPeriod(ctx, ledger.PeriodToday)
	if err != nil {
		return "", err
	}
	weekRecords, err := m.recordsInPeriod(ctx, ledger.PeriodWeek)
	if err != nil {
		return "", err
	}
	monthRecords, err := m.recordsInPeriod(ctx, ledger.PeriodMonth)
	if err != nil {
		return "", err
	}

	today := report.Summarize(ledger.PeriodToday, todayRecords)
	week := report.Summarize(ledger.PeriodWeek, weekRecords)
	month := report.Summarize(ledger.PeriodMonth, monthRecords)
	byModel := report.ByModel(todayRecords)

	spend := map[budget.Scope]float64{
		budget.ScopeDaily:   today.TotalCostUSD,
		budget.ScopeWeekly:  week.TotalCostUSD,
		budget.ScopeMonthly: month.TotalCostUSD,
	}

	alerts := m.alertLog.List()
	if len(alerts) > dashboardAlertCount {
		alerts = alerts[len(alerts)-dashboardAlertCount:]
	}

	return report.FormatDashboard(today, week, month, byModel, m.Budget(), spend, alerts), nil
}

// ExportReport writes a JSON report for the period to path and returns
// the report. Suggestions are always derived from the current month.
func (m *Monitor) ExportReport(ctx context.Context, period, path string) (*report.Report, error) {
	records, err := m.recordsInPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	suggestions, err := m.OptimizationSuggestions(ctx)
	if err != nil {
		return nil, err
	}

	r := &report.Report{
		GeneratedAt: m.clock(),
		Summary:     report.Summarize(period, records),
		ByModel:     report.ByModel(records),
		ByProvider:  report.ByProvider(records),
		Budget:      m.Budget(),
		Alerts:      m.alertLog.List(),
		Suggestions: suggestions,
	}

	if err := r.WriteJSON(path); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the ledger backend and the alert log.
func (m *Monitor) Close() error {
	var firstErr error
	if err := m.alertLog.Close(); err != nil {
		firstErr = err
	}
	if err := m.storage.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

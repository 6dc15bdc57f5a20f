package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tokenwatch-hq/tokenwatch/pkg/config"
)

// UsageMetrics tracks call, cost, and token metrics for recorded usage.
//
// Metrics:
//   - tokenwatch_usage_calls_total: Recorded calls by provider and model
//   - tokenwatch_usage_cost_usd_total: Total cost in USD by provider and model
//   - tokenwatch_usage_tokens_total: Tokens by provider, model, and direction
//   - tokenwatch_usage_cost_per_call_usd: Cost distribution per call (histogram)
//   - tokenwatch_usage_budget_utilization: Spend as a fraction of each ceiling
type UsageMetrics struct {
	registry *prometheus.Registry

	callsTotal        *prometheus.CounterVec
	costTotal         *prometheus.CounterVec
	tokensTotal       *prometheus.CounterVec
	costPerCall       *prometheus.HistogramVec
	budgetUtilization *prometheus.GaugeVec
}

// NewUsageMetrics creates the metric set on a private registry.
func NewUsageMetrics(cfg config.MetricsConfig) *UsageMetrics {
	m := &UsageMetrics{
		registry: prometheus.NewRegistry(),

		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "calls_total",
				Help:      "Recorded API calls by provider and model",
			},
			[]string{"provider", "model"},
		),

		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_usd_total",
				Help:      "Total cost in USD by provider and model",
			},
			[]string{"provider", "model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Tokens by provider, model, and direction",
			},
			[]string{"provider", "model", "direction"},
		),

		costPerCall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_per_call_usd",
				Help:      "Cost distribution per call in USD",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"provider", "model"},
		),

		budgetUtilization: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "budget_utilization",
				Help:      "Spend as a fraction of the configured ceiling by scope",
			},
			[]string{"scope"},
		),
	}

	m.registry.MustRegister(
		m.callsTotal,
		m.costTotal,
		m.tokensTotal,
		m.costPerCall,
		m.budgetUtilization,
	)

	return m
}

// RecordCall records one call's cost and token counts.
func (m *UsageMetrics) RecordCall(provider, model string, inputTokens, outputTokens int64, costUSD float64) {
	m.callsTotal.WithLabelValues(provider, model).Inc()
	m.costTotal.WithLabelValues(provider, model).Add(costUSD)
	m.tokensTotal.WithLabelValues(provider, model, "input").Add(float64(inputTokens))
	m.tokensTotal.WithLabelValues(provider, model, "output").Add(float64(outputTokens))
	m.costPerCall.WithLabelValues(provider, model).Observe(costUSD)
}

// SetBudgetUtilization records spend as a fraction of a ceiling.
func (m *UsageMetrics) SetBudgetUtilization(scope string, fraction float64) {
	m.budgetUtilization.WithLabelValues(scope).Set(fraction)
}

// Gatherer exposes the private registry for callers that want to scrape
// or snapshot the metrics.
func (m *UsageMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

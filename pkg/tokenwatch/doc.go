// Package tokenwatch is the top-level API for local AI usage and cost
// accounting.
//
// A Monitor owns the usage ledger, the price table, the budget policy,
// and telemetry. Recording a call is the hot path: the record is priced
// against the static table, durably appended to the ledger, checked
// against the configured budget ceilings, and returned together with
// any alerts the call triggered. Alerts are advisory; a call is never
// rejected for crossing a ceiling.
//
// # Usage
//
//	m, err := tokenwatch.New(config.DefaultConfig())
//	if err != nil { ... }
//	defer m.Close()
//
//	rec, alerts, err := m.RecordUsage(ctx, &tokenwatch.UsageInput{
//		Model:        "claude-haiku-4-5-20251001",
//		InputTokens:  1200,
//		OutputTokens: 400,
//	})
package tokenwatch

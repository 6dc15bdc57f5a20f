// Package budget implements spending ceilings and alerting for API usage.
//
// A budget is a set of optional USD ceilings over fixed windows (daily,
// weekly, monthly) plus an optional per-call ceiling. Ceilings are
// advisory: crossing one produces an alert but never blocks a call from
// being recorded.
//
// # Policy
//
// Evaluate compares observed spend against each configured ceiling and
// emits at most one alert per scope. Spend at or above the ceiling yields
// an EXCEEDED alert; spend at or above the configured warning fraction of
// the ceiling yields a WARNING alert. Unset ceilings (zero) are skipped.
//
// # Persistence
//
// The budget configuration is stored as a YAML file and survives process
// restarts. Alerts are appended to a JSONL log so that past alerts can be
// read back after restart.
package budget

// Package report aggregates usage records into summaries, groupings,
// optimization suggestions, and exportable reports.
//
// Summaries total cost and tokens over a window. Groupings break spend
// down by model or provider, ordered by cost descending with lexical
// tie-breaks so output is stable. Suggestions apply deterministic
// heuristics over the current month's usage: the same ledger contents
// always produce the same suggestions in the same order.
package report

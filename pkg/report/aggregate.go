package report

import (
	"sort"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

// Summary totals spend and token usage over a window of records.
type Summary struct {
	Period            string  `json:"period"`
	TotalCostUSD      float64 `json:"total_cost_usd"`
	InputTokens       int64   `json:"input_tokens"`
	OutputTokens      int64   `json:"output_tokens"`
	TotalTokens       int64   `json:"total_tokens"`
	CallCount         int64   `json:"call_count"`
	AvgCostPerCallUSD float64 `json:"avg_cost_per_call_usd"`
}

// Summarize totals the given records. An empty slice yields a zero
// summary, not an error.
func Summarize(period string, records []*ledger.UsageRecord) *Summary {
	s := &Summary{Period: period}
	for _, r := range records {
		s.TotalCostUSD += r.CostUSD
		s.InputTokens += r.InputTokens
		s.OutputTokens += r.OutputTokens
		s.TotalTokens += r.TotalTokens
		s.CallCount++
	}
	if s.CallCount > 0 {
		s.AvgCostPerCallUSD = s.TotalCostUSD / float64(s.CallCount)
	}
	return s
}

// GroupEntry is one row of a spend breakdown.
type GroupEntry struct {
	Key               string  `json:"key"`
	TotalCostUSD      float64 `json:"total_cost_usd"`
	InputTokens       int64   `json:"input_tokens"`
	OutputTokens      int64   `json:"output_tokens"`
	CallCount         int64   `json:"call_count"`
	AvgCostPerCallUSD float64 `json:"avg_cost_per_call_usd"`
}

// ByModel groups spend by model, ordered by cost descending with
// lexical tie-breaks.
func ByModel(records []*ledger.UsageRecord) []GroupEntry {
	return groupBy(records, func(r *ledger.UsageRecord) string { return r.Model })
}

// ByProvider groups spend by provider, ordered by cost descending with
// lexical tie-breaks.
func ByProvider(records []*ledger.UsageRecord) []GroupEntry {
	return groupBy(records, func(r *ledger.UsageRecord) string { return r.Provider })
}

func groupBy(records []*ledger.UsageRecord, key func(*ledger.UsageRecord) string) []GroupEntry {
	groups := make(map[string]*GroupEntry)
	for _, r := range records {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &GroupEntry{Key: k}
			groups[k] = g
		}
		g.TotalCostUSD += r.CostUSD
		g.InputTokens += r.InputTokens
		g.OutputTokens += r.OutputTokens
		g.CallCount++
	}

	out := make([]GroupEntry, 0, len(groups))
	for _, g := range groups {
		if g.CallCount > 0 {
			g.AvgCostPerCallUSD = g.TotalCostUSD / float64(g.CallCount)
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCostUSD != out[j].TotalCostUSD {
			return out[i].TotalCostUSD > out[j].TotalCostUSD
		}
		return out[i].Key < out[j].Key
	})
	return out
}

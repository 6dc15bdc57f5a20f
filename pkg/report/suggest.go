package report

import (
	"fmt"
	"sort"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
	"tokenwatch-hq/tokenwatch/pkg/pricing"
)

// Priority ranks how much a suggestion is worth acting on.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion types.
const (
	SuggestionModelSwap    = "model_swap"
	SuggestionPromptLength = "prompt_length"
	SuggestionPremiumSpend = "premium_spend"
	SuggestionInfo         = "info"
)

// Suggestion is one actionable cost-reduction hint derived from the
// current month's usage.
type Suggestion struct {
	Type                string   `json:"type"`
	Priority            Priority `json:"priority"`
	Message             string   `json:"message"`
	EstimatedSavingsUSD float64  `json:"estimated_savings_usd"`
	Model               string   `json:"model,omitempty"`
	SuggestedModel      string   `json:"suggested_model,omitempty"`
}

// Heuristic thresholds. Savings below savingsMediumUSD still produce a
// suggestion, just at low priority.
const (
	swapMinCalls        = 10
	swapMaxCostFraction = 0.60
	avgCostHighUSD      = 0.05
	premiumInputRateUSD = 1.0
	premiumSpendUSD     = 5.0
	savingsHighUSD      = 5.0
	savingsMediumUSD    = 0.50
)

// modelStats holds per-model aggregates over the analysis window.
type modelStats struct {
	model        string
	provider     string
	calls        int64
	costUSD      float64
	inputTokens  int64
	outputTokens int64
	premiumRate  bool
}

// Suggest derives optimization suggestions from the given records,
// normally the current calendar month's usage. The output is fully
// determined by the records: identical input yields identical
// suggestions in identical order. The list is never empty: when no
// heuristic fires an informational entry reports the month's total.
func Suggest(records []*ledger.UsageRecord) []Suggestion {
	stats := collectStats(records)

	var out []Suggestion
	out = append(out, swapSuggestions(stats)...)
	if s := promptLengthSuggestion(records); s != nil {
		out = append(out, *s)
	}
	if s := premiumSpendSuggestion(stats); s != nil {
		out = append(out, *s)
	}
	if len(out) == 0 {
		out = append(out, infoSuggestion(records))
	}

	sort.Slice(out, func(i, j int) bool {
		if ri, rj := priorityRank(out[i].Priority), priorityRank(out[j].Priority); ri != rj {
			return ri < rj
		}
		if out[i].EstimatedSavingsUSD != out[j].EstimatedSavingsUSD {
			return out[i].EstimatedSavingsUSD > out[j].EstimatedSavingsUSD
		}
		return out[i].Message < out[j].Message
	})
	return out
}

func priorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func savingsPriority(savingsUSD float64) Priority {
	switch {
	case savingsUSD >= savingsHighUSD:
		return PriorityHigh
	case savingsUSD >= savingsMediumUSD:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func collectStats(records []*ledger.UsageRecord) []*modelStats {
	byModel := make(map[string]*modelStats)
	for _, r := range records {
		s, ok := byModel[r.Model]
		if !ok {
			s = &modelStats{model: r.Model, provider: r.Provider}
			if entry, known := pricing.Lookup(r.Model); known {
				s.premiumRate = entry.InputPerMillion > premiumInputRateUSD
			}
			byModel[r.Model] = s
		}
		s.calls++
		s.costUSD += r.CostUSD
		s.inputTokens += r.InputTokens
		s.outputTokens += r.OutputTokens
	}

	out := make([]*modelStats, 0, len(byModel))
	for _, s := range byModel {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].model < out[j].model })
	return out
}

// swapSuggestions proposes a cheaper same-provider model for any model
// with enough call volume where the candidate would cost at most 60% of
// the current blended cost per call at the same token shape.
func swapSuggestions(stats []*modelStats) []Suggestion {
	var out []Suggestion
	for _, s := range stats {
		if s.calls < swapMinCalls {
			continue
		}
		curAvg := s.costUSD / float64(s.calls)
		if curAvg <= 0 {
			continue
		}
		avgIn := s.inputTokens / s.calls
		avgOut := s.outputTokens / s.calls

		candidate, candAvg, found := cheapestAlternative(s.model, s.provider, avgIn, avgOut, curAvg)
		if !found {
			continue
		}

		savings := (curAvg - candAvg) * float64(s.calls)
		out = append(out, Suggestion{
			Type:                SuggestionModelSwap,
			Priority:            savingsPriority(savings),
			EstimatedSavingsUSD: savings,
			Model:               s.model,
			SuggestedModel:      candidate,
			Message: fmt.Sprintf("switch %s to %s: ~$%.4f/call vs $%.4f/call at your usage, est. $%.2f saved on this month's volume",
				s.model, candidate, candAvg, curAvg, savings),
		})
	}
	return out
}

// cheapestAlternative finds the cheapest same-provider model whose cost
// at the given token shape is at most swapMaxCostFraction of curAvg.
// Ties break on model ID.
func cheapestAlternative(model, provider string, avgIn, avgOut int64, curAvg float64) (string, float64, bool) {
	var (
		best     string
		bestCost float64
		found    bool
	)
	for _, id := range pricing.Models() {
		if id == model {
			continue
		}
		entry, _ := pricing.Lookup(id)
		if entry.Provider != provider {
			continue
		}
		cost := pricing.Cost(entry, avgIn, avgOut)
		if cost > curAvg*swapMaxCostFraction {
			continue
		}
		if !found || cost < bestCost || (cost == bestCost && id < best) {
			best, bestCost, found = id, cost, true
		}
	}
	return best, bestCost, found
}

// promptLengthSuggestion fires when the blended cost per call is high,
// which usually means oversized prompts or responses.
func promptLengthSuggestion(records []*ledger.UsageRecord) *Suggestion {
	if len(records) == 0 {
		return nil
	}
	var total float64
	for _, r := range records {
		total += r.CostUSD
	}
	avg := total / float64(len(records))
	if avg <= avgCostHighUSD {
		return nil
	}
	return &Suggestion{
		Type:     SuggestionPromptLength,
		Priority: PriorityMedium,
		Message: fmt.Sprintf("average cost per call is $%.4f; trimming prompt and response length would cut spend across all models",
			avg),
	}
}

// infoSuggestion is the fallback when nothing else fired.
func infoSuggestion(records []*ledger.UsageRecord) Suggestion {
	var total float64
	for _, r := range records {
		total += r.CostUSD
	}
	return Suggestion{
		Type:     SuggestionInfo,
		Priority: PriorityLow,
		Message:  fmt.Sprintf("spending looks efficient; monthly total: $%.4f", total),
	}
}

// premiumSpendSuggestion fires when spend on premium-priced models
// passes a floor where downgrading some traffic is worth considering.
func premiumSpendSuggestion(stats []*modelStats) *Suggestion {
	var premium float64
	for _, s := range stats {
		if s.premiumRate {
			premium += s.costUSD
		}
	}
	if premium <= premiumSpendUSD {
		return nil
	}
	return &Suggestion{
		Type:     SuggestionPremiumSpend,
		Priority: PriorityMedium,
		Message: fmt.Sprintf("$%.2f of this month's spend is on premium-priced models; route routine tasks to a cheaper tier",
			premium),
	}
}

package pricing

import "sort"

// Estimate contains the cost calculation result for a single call.
type Estimate struct {
	// Model is the model identifier the estimate was computed for.
	Model string `json:"model"`

	// Provider is the provider name, or "unknown" for models absent
	// from the price table.
	Provider string `json:"provider"`

	// InputTokens is the input (prompt) token count.
	InputTokens int64 `json:"input_tokens"`

	// OutputTokens is the output (completion) token count.
	OutputTokens int64 `json:"output_tokens"`

	// CostUSD is the calculated cost in USD. Zero for unknown models.
	CostUSD float64 `json:"cost_usd"`

	// InputPerMillion is the input rate applied, USD per 1M tokens.
	InputPerMillion float64 `json:"input_rate_per_1m"`

	// OutputPerMillion is the output rate applied, USD per 1M tokens.
	OutputPerMillion float64 `json:"output_rate_per_1m"`

	// Known reports whether the model was found in the price table.
	// When false the cost is the fallback (zero), not real pricing.
	Known bool `json:"known"`
}

// Cost calculates the USD cost of a call against a price table entry.
func Cost(e Entry, inputTokens, outputTokens int64) float64 {
	return (float64(inputTokens)*e.InputPerMillion + float64(outputTokens)*e.OutputPerMillion) / 1e6
}

// EstimateCost calculates the cost of a hypothetical call. It never
// fails: unknown models produce a zero-cost estimate with Known=false
// and Provider set to "unknown".
func EstimateCost(model string, inputTokens, outputTokens int64) Estimate {
	entry, ok := Lookup(model)
	est := Estimate{
		Model:        model,
		Provider:     UnknownProvider,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		Known:        ok,
	}
	if !ok {
		return est
	}

	est.Provider = entry.Provider
	est.InputPerMillion = entry.InputPerMillion
	est.OutputPerMillion = entry.OutputPerMillion
	est.CostUSD = Cost(entry, inputTokens, outputTokens)
	return est
}

// CompareModels calculates the cost of the given token mix for every
// model in the price table and returns the results ordered ascending by
// cost, ties broken by model identifier, so repeated calls over the
// unchanged table return an identical ordering.
func CompareModels(inputTokens, outputTokens int64) []Estimate {
	results := make([]Estimate, 0, len(table))
	for model, entry := range table {
		results = append(results, Estimate{
			Model:            model,
			Provider:         entry.Provider,
			InputTokens:      inputTokens,
			OutputTokens:     outputTokens,
			CostUSD:          Cost(entry, inputTokens, outputTokens),
			InputPerMillion:  entry.InputPerMillion,
			OutputPerMillion: entry.OutputPerMillion,
			Known:            true,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CostUSD != results[j].CostUSD {
			return results[i].CostUSD < results[j].CostUSD
		}
		return results[i].Model < results[j].Model
	})

	return results
}

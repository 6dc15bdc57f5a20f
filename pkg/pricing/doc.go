// Package pricing provides the static model price table and pure cost
// calculation for TokenWatch.
//
// # Price Table
//
// Prices are expressed in USD per one million tokens, split into input
// (prompt) and output (completion) rates, and are maintained by hand from
// the official provider pricing pages. The table is immutable after
// process start.
//
// # Unknown Models
//
// Lookups for models that are not in the table never fail. Cost
// calculation falls back to zero cost and the result carries Known=false
// so callers can distinguish known from unknown pricing.
//
// # Basic Usage
//
//	est := pricing.EstimateCost("claude-haiku-4-5-20251001", 1200, 400)
//	fmt.Printf("$%.6f (known=%v)\n", est.CostUSD, est.Known)
//
//	// Rank every model in the table by cost for a given token mix,
//	// cheapest first.
//	for _, e := range pricing.CompareModels(2000, 500) {
//	    fmt.Printf("%-40s $%.6f\n", e.Model, e.CostUSD)
//	}
//
// All functions are pure and safe for concurrent use.
package pricing

package report

import (
	"math"
	"reflect"
	"testing"

	"tokenwatch-hq/tokenwatch/pkg/ledger"
)

func nCalls(n int, model, provider string, in, out int64, cost float64) []*ledger.UsageRecord {
	records := make([]*ledger.UsageRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, rec(model, provider, in, out, cost))
	}
	return records
}

// TestSuggest_ModelSwap tests that heavy use of an expensive model
// proposes the cheapest same-provider alternative.
func TestSuggest_ModelSwap(t *testing.T) {
	// 12 opus calls at 2000/500 tokens, $0.0225 each.
	records := nCalls(12, "claude-opus-4-6", "anthropic", 2000, 500, 0.0225)

	suggestions := Suggest(records)

	var swap *Suggestion
	for i := range suggestions {
		if suggestions[i].Type == SuggestionModelSwap {
			swap = &suggestions[i]
			break
		}
	}
	if swap == nil {
		t.Fatal("expected a model swap suggestion")
	}
	if swap.Model != "claude-opus-4-6" {
		t.Errorf("swap source = %q", swap.Model)
	}
	if swap.SuggestedModel != "claude-haiku-4-5-20251001" {
		t.Errorf("swap target = %q, want the cheapest anthropic model", swap.SuggestedModel)
	}
	// (0.0225 - 0.0045) * 12 = 0.216
	if math.Abs(swap.EstimatedSavingsUSD-0.216) > 1e-9 {
		t.Errorf("savings = %v, want 0.216", swap.EstimatedSavingsUSD)
	}
	if swap.Priority != PriorityLow {
		t.Errorf("priority = %s, want low for savings under $0.50", swap.Priority)
	}
}

// TestSuggest_TooFewCalls tests the call-volume floor.
func TestSuggest_TooFewCalls(t *testing.T) {
	records := nCalls(9, "claude-opus-4-6", "anthropic", 2000, 500, 0.0225)

	for _, s := range Suggest(records) {
		if s.Type == SuggestionModelSwap {
			t.Errorf("swap suggested on only 9 calls: %+v", s)
		}
	}
}

// TestSuggest_PromptLength tests the expensive-average heuristic.
func TestSuggest_PromptLength(t *testing.T) {
	// Average cost per call well over the threshold.
	records := nCalls(5, "gpt-5.2-pro", "openai", 10000, 2000, 0.546)

	var found bool
	for _, s := range Suggest(records) {
		if s.Type == SuggestionPromptLength {
			found = true
			if s.Priority != PriorityMedium {
				t.Errorf("prompt length priority = %s, want medium", s.Priority)
			}
		}
	}
	if !found {
		t.Error("expected a prompt length suggestion at $0.546/call")
	}
}

// TestSuggest_PremiumSpend tests the premium-model spend heuristic.
func TestSuggest_PremiumSpend(t *testing.T) {
	// $6.55 on a model priced above $1/1M input.
	records := nCalls(12, "gpt-5.2-pro", "openai", 10000, 2000, 0.546)

	var found bool
	for _, s := range Suggest(records) {
		if s.Type == SuggestionPremiumSpend {
			found = true
		}
	}
	if !found {
		t.Error("expected a premium spend suggestion above $5")
	}
}

// TestSuggest_InfoFallback tests the quiet case: when no heuristic
// fires, a single informational entry reports the month's total.
func TestSuggest_InfoFallback(t *testing.T) {
	got := Suggest(nil)
	if len(got) != 1 {
		t.Fatalf("empty ledger: got %d suggestions, want the info fallback", len(got))
	}
	if got[0].Type != SuggestionInfo || got[0].Priority != PriorityLow {
		t.Errorf("fallback = %+v, want low-priority info", got[0])
	}
	if got[0].Message != "spending looks efficient; monthly total: $0.0000" {
		t.Errorf("fallback message = %q", got[0].Message)
	}

	// Cheap, low-volume usage also falls back, with the real total.
	records := nCalls(3, "claude-haiku-4-5-20251001", "anthropic", 1200, 400, 0.0032)
	got = Suggest(records)
	if len(got) != 1 || got[0].Type != SuggestionInfo {
		t.Fatalf("light usage: got %+v, want the info fallback", got)
	}
	if got[0].Message != "spending looks efficient; monthly total: $0.0096" {
		t.Errorf("fallback message = %q", got[0].Message)
	}
}

// TestSuggest_Deterministic tests that identical ledgers produce
// identical output.
func TestSuggest_Deterministic(t *testing.T) {
	var records []*ledger.UsageRecord
	records = append(records, nCalls(12, "claude-opus-4-6", "anthropic", 2000, 500, 0.0225)...)
	records = append(records, nCalls(15, "gpt-5.2-pro", "openai", 10000, 2000, 0.546)...)
	records = append(records, nCalls(20, "o3", "openai", 5000, 1000, 0.09)...)

	first := Suggest(records)
	if len(first) == 0 {
		t.Fatal("expected suggestions from this workload")
	}
	for i := 0; i < 5; i++ {
		if again := Suggest(records); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

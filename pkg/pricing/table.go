package pricing

import "sort"

// Entry contains per-million-token pricing for a single model.
type Entry struct {
	// InputPerMillion is the USD cost per one million input tokens.
	InputPerMillion float64

	// OutputPerMillion is the USD cost per one million output tokens.
	OutputPerMillion float64

	// Provider is the provider name ("anthropic", "openai", etc.).
	Provider string
}

// UnknownProvider is the provider name reported for models absent from
// the price table.
const UnknownProvider = "unknown"

// table maps model identifiers to their pricing.
// Updated: February 16, 2026. Sources: official provider pricing pages.
var table = map[string]Entry{
	// Anthropic
	"claude-opus-4-6":            {InputPerMillion: 5.00, OutputPerMillion: 25.00, Provider: "anthropic"},
	"claude-opus-4-5":            {InputPerMillion: 5.00, OutputPerMillion: 25.00, Provider: "anthropic"},
	"claude-sonnet-4-5-20250929": {InputPerMillion: 3.00, OutputPerMillion: 15.00, Provider: "anthropic"},
	"claude-haiku-4-5-20251001":  {InputPerMillion: 1.00, OutputPerMillion: 5.00, Provider: "anthropic"},

	// OpenAI
	"gpt-5.2-pro":  {InputPerMillion: 21.00, OutputPerMillion: 168.00, Provider: "openai"},
	"gpt-5.2":      {InputPerMillion: 1.75, OutputPerMillion: 14.00, Provider: "openai"},
	"gpt-5":        {InputPerMillion: 1.25, OutputPerMillion: 10.00, Provider: "openai"},
	"gpt-4.1":      {InputPerMillion: 2.00, OutputPerMillion: 8.00, Provider: "openai"},
	"gpt-4.1-mini": {InputPerMillion: 0.40, OutputPerMillion: 1.60, Provider: "openai"},
	"gpt-4.1-nano": {InputPerMillion: 0.10, OutputPerMillion: 0.40, Provider: "openai"},
	"o3":           {InputPerMillion: 10.00, OutputPerMillion: 40.00, Provider: "openai"},
	"o4-mini":      {InputPerMillion: 1.10, OutputPerMillion: 4.40, Provider: "openai"},

	// Google
	"gemini-3-pro":          {InputPerMillion: 2.00, OutputPerMillion: 12.00, Provider: "google"},
	"gemini-3-flash":        {InputPerMillion: 0.50, OutputPerMillion: 3.00, Provider: "google"},
	"gemini-2.5-pro":        {InputPerMillion: 1.25, OutputPerMillion: 10.00, Provider: "google"},
	"gemini-2.5-flash":      {InputPerMillion: 0.30, OutputPerMillion: 2.50, Provider: "google"},
	"gemini-2.5-flash-lite": {InputPerMillion: 0.10, OutputPerMillion: 0.40, Provider: "google"},
	"gemini-2.0-flash":      {InputPerMillion: 0.10, OutputPerMillion: 0.40, Provider: "google"},

	// Mistral
	"mistral-large-2411": {InputPerMillion: 2.00, OutputPerMillion: 6.00, Provider: "mistral"},
	"mistral-medium-3":   {InputPerMillion: 0.40, OutputPerMillion: 2.00, Provider: "mistral"},
	"mistral-small":      {InputPerMillion: 0.10, OutputPerMillion: 0.30, Provider: "mistral"},
	"mistral-nemo":       {InputPerMillion: 0.02, OutputPerMillion: 0.10, Provider: "mistral"},
	"devstral-2":         {InputPerMillion: 0.40, OutputPerMillion: 2.00, Provider: "mistral"},

	// xAI Grok
	"grok-4":        {InputPerMillion: 3.00, OutputPerMillion: 15.00, Provider: "xai"},
	"grok-3":        {InputPerMillion: 3.00, OutputPerMillion: 15.00, Provider: "xai"},
	"grok-4.1-fast": {InputPerMillion: 0.20, OutputPerMillion: 0.50, Provider: "xai"},

	// Kimi (Moonshot AI)
	"kimi-k2.5":     {InputPerMillion: 0.60, OutputPerMillion: 3.00, Provider: "kimi"},
	"kimi-k2":       {InputPerMillion: 0.60, OutputPerMillion: 2.50, Provider: "kimi"},
	"kimi-k2-turbo": {InputPerMillion: 1.15, OutputPerMillion: 8.00, Provider: "kimi"},

	// Qwen (Alibaba)
	"qwen3.5-plus": {InputPerMillion: 0.11, OutputPerMillion: 0.44, Provider: "qwen"},
	"qwen3-max":    {InputPerMillion: 0.40, OutputPerMillion: 1.60, Provider: "qwen"},
	"qwen3-vl-32b": {InputPerMillion: 0.91, OutputPerMillion: 3.64, Provider: "qwen"},

	// DeepSeek
	"deepseek-v3.2": {InputPerMillion: 0.14, OutputPerMillion: 0.28, Provider: "deepseek"},
	"deepseek-r1":   {InputPerMillion: 0.55, OutputPerMillion: 2.19, Provider: "deepseek"},
	"deepseek-v3":   {InputPerMillion: 0.27, OutputPerMillion: 1.10, Provider: "deepseek"},

	// Meta Llama
	"llama-4-maverick": {InputPerMillion: 0.27, OutputPerMillion: 0.85, Provider: "meta"},
	"llama-4-scout":    {InputPerMillion: 0.18, OutputPerMillion: 0.59, Provider: "meta"},
	"llama-3.3-70b":    {InputPerMillion: 0.23, OutputPerMillion: 0.40, Provider: "meta"},

	// MiniMax
	"minimax-m2.5":    {InputPerMillion: 0.30, OutputPerMillion: 1.20, Provider: "minimax"},
	"minimax-m1":      {InputPerMillion: 0.43, OutputPerMillion: 1.93, Provider: "minimax"},
	"minimax-text-01": {InputPerMillion: 0.20, OutputPerMillion: 1.10, Provider: "minimax"},
}

// Lookup returns the price table entry for a model.
// The second return value reports whether the model is in the table.
func Lookup(model string) (Entry, bool) {
	e, ok := table[model]
	return e, ok
}

// Models returns every model identifier in the price table in lexical order.
func Models() []string {
	models := make([]string, 0, len(table))
	for m := range table {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

// Normalize maps a provider-reported model name to a table entry.
// Providers sometimes return dated variants (e.g. "gpt-4.1-2025-04-14");
// Normalize tries an exact match first, then the longest table model that
// is a prefix of the reported name. The second return value reports
// whether a table model was found.
func Normalize(model string) (string, bool) {
	if _, ok := table[model]; ok {
		return model, true
	}

	best := ""
	for known := range table {
		if len(known) < len(model) && model[:len(known)] == known {
			// Longest prefix wins; ties cannot happen since table keys
			// are distinct prefixes of distinct lengths here.
			if len(known) > len(best) {
				best = known
			}
		}
	}
	if best == "" {
		return model, false
	}
	return best, true
}

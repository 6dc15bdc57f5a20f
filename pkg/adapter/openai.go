package adapter

import (
	"encoding/json"

	"tokenwatch-hq/tokenwatch/pkg/pricing"
)

// OpenAIAdapter extracts usage from OpenAI Chat Completions API
// responses. Dated model IDs such as "gpt-5.2-2026-01-15" are
// normalized to their base price table entry.
type OpenAIAdapter struct{}

// NewOpenAIAdapter creates a new OpenAI adapter.
func NewOpenAIAdapter() *OpenAIAdapter {
	return &OpenAIAdapter{}
}

func (a *OpenAIAdapter) Provider() string {
	return "openai"
}

type openaiResponse struct {
	Model string `json:"model"`
	Usage *struct {
		PromptTokens     *int64 `json:"prompt_tokens"`
		CompletionTokens *int64 `json:"completion_tokens"`
	} `json:"usage"`
}

func (a *OpenAIAdapter) Extract(raw []byte) (*Usage, error) {
	var resp openaiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, NewAdapterError(a.Provider(), "body", err)
	}
	if resp.Model == "" {
		return nil, NewAdapterError(a.Provider(), "model", nil)
	}
	if resp.Usage == nil {
		return nil, NewAdapterError(a.Provider(), "usage", nil)
	}
	if resp.Usage.PromptTokens == nil {
		return nil, NewAdapterError(a.Provider(), "usage.prompt_tokens", nil)
	}
	if resp.Usage.CompletionTokens == nil {
		return nil, NewAdapterError(a.Provider(), "usage.completion_tokens", nil)
	}

	model := resp.Model
	if base, ok := pricing.Normalize(model); ok {
		model = base
	}

	return &Usage{
		Model:        model,
		InputTokens:  *resp.Usage.PromptTokens,
		OutputTokens: *resp.Usage.CompletionTokens,
	}, nil
}

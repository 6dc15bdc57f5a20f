package adapter

import "encoding/json"

// AnthropicAdapter extracts usage from Anthropic Messages API
// responses.
type AnthropicAdapter struct{}

// NewAnthropicAdapter creates a new Anthropic adapter.
func NewAnthropicAdapter() *AnthropicAdapter {
	return &AnthropicAdapter{}
}

func (a *AnthropicAdapter) Provider() string {
	return "anthropic"
}

// anthropicResponse covers the fields of a Messages API response that
// matter for accounting. Pointer fields distinguish absent from zero.
type anthropicResponse struct {
	Model string `json:"model"`
	Usage *struct {
		InputTokens  *int64 `json:"input_tokens"`
		OutputTokens *int64 `json:"output_tokens"`
	} `json:"usage"`
}

func (a *AnthropicAdapter) Extract(raw []byte) (*Usage, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, NewAdapterError(a.Provider(), "body", err)
	}
	if resp.Model == "" {
		return nil, NewAdapterError(a.Provider(), "model", nil)
	}
	if resp.Usage == nil {
		return nil, NewAdapterError(a.Provider(), "usage", nil)
	}
	if resp.Usage.InputTokens == nil {
		return nil, NewAdapterError(a.Provider(), "usage.input_tokens", nil)
	}
	if resp.Usage.OutputTokens == nil {
		return nil, NewAdapterError(a.Provider(), "usage.output_tokens", nil)
	}

	return &Usage{
		Model:        resp.Model,
		InputTokens:  *resp.Usage.InputTokens,
		OutputTokens: *resp.Usage.OutputTokens,
	}, nil
}

// Package adapter extracts token usage from raw provider API responses.
//
// Each adapter knows one provider's response shape and pulls the model
// ID and token counts out of a raw JSON body. Adapters report missing
// or malformed fields as AdapterError so callers can distinguish a bad
// response from a transport failure.
package adapter

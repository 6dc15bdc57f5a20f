// Package cli provides output formatting helpers for the tokenwatch
// command.
//
// Commands that list records or summaries support text (default),
// JSON, and CSV output. The formatters here keep that switch in one
// place.
package cli

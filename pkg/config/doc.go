// Package config defines the runtime configuration for TokenWatch.
//
// Configuration is loaded from a YAML file with environment variable
// overrides (TOKENWATCH_* prefix). A missing file is not an error: the
// defaults describe a working local setup with a JSONL ledger under
// .tokenwatch/.
package config

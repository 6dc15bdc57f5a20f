package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads configuration from a YAML file, applies TOKENWATCH_*
// environment overrides, and validates the result. A missing file
// yields the defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults stand.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOKENWATCH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TOKENWATCH_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("TOKENWATCH_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("TOKENWATCH_STORAGE_BUSY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Storage.BusyTimeout = d
		}
	}
	if v := os.Getenv("TOKENWATCH_LOG_LEVEL"); v != "" {
		cfg.Telemetry.Logging.Level = v
	}
	if v := os.Getenv("TOKENWATCH_LOG_FORMAT"); v != "" {
		cfg.Telemetry.Logging.Format = v
	}
	if v := os.Getenv("TOKENWATCH_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}

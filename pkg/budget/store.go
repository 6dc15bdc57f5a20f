package budget

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a budget configuration from a YAML file. A missing file
// yields the default configuration. A corrupt file also yields the
// default configuration with a warning, so a damaged data directory
// never blocks recording.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read budget file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Default().Warn("budget file is corrupt, using defaults",
			"path", path,
			"error", err)
		return DefaultConfig(), nil
	}
	if cfg.AlertAtPercent == 0 {
		cfg.AlertAtPercent = DefaultConfig().AlertAtPercent
	}

	if err := cfg.Validate(); err != nil {
		slog.Default().Warn("budget file is invalid, using defaults",
			"path", path,
			"error", err)
		return DefaultConfig(), nil
	}

	return cfg, nil
}

// Save writes the budget configuration atomically via a temporary file
// and rename.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal budget config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create budget directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write budget file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace budget file: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSONL  = "jsonl"
	BackendMemory = "memory"
)

// Config is the top-level TokenWatch configuration.
type Config struct {
	// DataDir is the directory holding the ledger, budget file, and
	// alert log. Default: ".tokenwatch"
	DataDir string `yaml:"data_dir"`

	Storage   StorageConfig   `yaml:"storage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// StorageConfig selects and tunes the ledger backend.
type StorageConfig struct {
	// Backend is the ledger backend ("sqlite", "jsonl", "memory").
	// Default: "jsonl"
	Backend string `yaml:"backend"`

	// Path is the ledger file path. Empty means a backend-specific
	// default under DataDir.
	Path string `yaml:"path"`

	// WALMode enables SQLite write-ahead logging. Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the SQLite busy timeout. Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// MaxOpenConns is the SQLite connection pool size. Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the SQLite idle connection count. Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`
}

// TelemetryConfig groups logging and metrics settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn",
	// "error"). Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text"). Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in logs. Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig controls the in-process Prometheus registry.
type MetricsConfig struct {
	// Enabled turns metric collection on. Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix. Default: "tokenwatch"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem label. Default: "usage"
	Subsystem string `yaml:"subsystem"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DataDir: ".tokenwatch",
		Storage: StorageConfig{
			Backend:      BackendJSONL,
			WALMode:      true,
			BusyTimeout:  5 * time.Second,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
			Metrics: MetricsConfig{
				Enabled:   true,
				Namespace: "tokenwatch",
				Subsystem: "usage",
			},
		},
	}
}

// LedgerPath resolves the configured ledger path, falling back to the
// backend default under DataDir.
func (c *Config) LedgerPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "usage.db")
	default:
		return filepath.Join(c.DataDir, "usage.jsonl")
	}
}

// BudgetPath is where the budget configuration is persisted.
func (c *Config) BudgetPath() string {
	return filepath.Join(c.DataDir, "budget.yaml")
}

// AlertLogPath is where emitted alerts are appended.
func (c *Config) AlertLogPath() string {
	return filepath.Join(c.DataDir, "alerts.jsonl")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	switch c.Storage.Backend {
	case BackendSQLite, BackendJSONL, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.BusyTimeout < 0 {
		return fmt.Errorf("storage busy_timeout must be non-negative")
	}
	if c.Storage.MaxOpenConns < 1 {
		return fmt.Errorf("storage max_open_conns must be at least 1")
	}
	if c.Storage.MaxIdleConns < 0 {
		return fmt.Errorf("storage max_idle_conns must be non-negative")
	}

	switch c.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Telemetry.Logging.Level)
	}
	switch c.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Telemetry.Logging.Format)
	}

	if c.Telemetry.Metrics.Enabled && c.Telemetry.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace must not be empty")
	}

	return nil
}

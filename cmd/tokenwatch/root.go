package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/config"
	"tokenwatch-hq/tokenwatch/pkg/telemetry/logging"
	"tokenwatch-hq/tokenwatch/pkg/tokenwatch"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tokenwatch",
	Short: "TokenWatch - local AI API usage and cost accounting",
	Long: `TokenWatch tracks what your AI API calls cost, locally.

Calls are priced against a static table and appended to a local ledger.
From there you get spend summaries, budget alerts, model comparisons,
and optimization suggestions. Nothing leaves your machine.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tokenwatch.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the config file and applies the verbose flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newMonitor builds a Monitor from the config file. The caller owns the
// returned Monitor and must Close it.
func newMonitor() (*tokenwatch.Monitor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logging.New(cfg.Telemetry.Logging, os.Stderr)
	return tokenwatch.New(cfg)
}

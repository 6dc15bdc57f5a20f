package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show optimization suggestions",
	Long: `Derive cost-reduction suggestions from the current month's usage.

Suggestions are deterministic: the same ledger always produces the same
output.`,
	RunE: runTips,
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}

func runTips(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	suggestions, err := m.OptimizationSuggestions(context.Background())
	if err != nil {
		return err
	}
	for _, s := range suggestions {
		fmt.Printf("[%s] %s\n", s.Priority, s.Message)
	}
	return nil
}

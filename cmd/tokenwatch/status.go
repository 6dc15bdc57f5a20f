package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the usage dashboard",
	Long: `Show today's spend, the per-model breakdown, budget utilization,
and recent alerts.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	out, err := m.FormatDashboard(context.Background())
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exportFlags struct {
	period string
	out    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON usage report",
	Long: `Export a JSON report covering a period: summary, per-model and
per-provider breakdowns, the active budget, past alerts, and this
month's optimization suggestions.

Examples:
  tokenwatch export --period month --out report.json
  tokenwatch export --period 2026-08-15 --out day.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFlags.period, "period", "month", "period to export")
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "tokenwatch-report.json", "output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	r, err := m.ExportReport(context.Background(), exportFlags.period, exportFlags.out)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s: $%.4f across %d calls\n",
		exportFlags.out, r.Summary.TotalCostUSD, r.Summary.CallCount)
	return nil
}

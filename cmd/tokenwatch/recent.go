package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/cli"
)

var recentFlags struct {
	limit  int
	format string
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent recorded calls",
	Long: `List the most recent recorded calls, newest first.

Examples:
  tokenwatch recent --limit 20
  tokenwatch recent --format csv > calls.csv`,
	RunE: runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)

	recentCmd.Flags().IntVar(&recentFlags.limit, "limit", 10, "number of calls to show")
	recentCmd.Flags().StringVar(&recentFlags.format, "format", "text", "output format: text, json, csv")
}

func runRecent(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(recentFlags.format)
	if err != nil {
		return err
	}

	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	records, err := m.RecentCalls(context.Background(), recentFlags.limit)
	if err != nil {
		return err
	}

	switch format {
	case cli.FormatJSON:
		return cli.WriteJSON(os.Stdout, records)
	case cli.FormatCSV:
		return cli.WriteRecordsCSV(os.Stdout, records)
	}

	for _, r := range records {
		line := fmt.Sprintf("%s  %-36s %6d in / %6d out  $%.6f",
			r.Timestamp.Format("2006-01-02 15:04:05"), r.Model,
			r.InputTokens, r.OutputTokens, r.CostUSD)
		if r.TaskLabel != "" {
			line += "  [" + r.TaskLabel + "]"
		}
		fmt.Println(line)
	}

	total, err := m.TotalCalls(context.Background())
	if err != nil {
		return err
	}
	if total > int64(len(records)) {
		fmt.Printf("showing %d of %d recorded calls\n", len(records), total)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/cli"
	"tokenwatch-hq/tokenwatch/pkg/report"
)

var spendFlags struct {
	period string
	by     string
	format string
}

var spendCmd = &cobra.Command{
	Use:   "spend",
	Short: "Summarize spend over a period",
	Long: `Summarize spend and token usage over a period.

Periods:
  today       the current calendar day
  week        the rolling last 7 days
  month       the current calendar month
  all         the whole ledger
  YYYY-MM-DD  a specific calendar day

Examples:
  tokenwatch spend --period today
  tokenwatch spend --period month --by model
  tokenwatch spend --period 2026-08-15 --by provider`,
	RunE: runSpend,
}

func init() {
	rootCmd.AddCommand(spendCmd)

	spendCmd.Flags().StringVar(&spendFlags.period, "period", "today", "period to summarize")
	spendCmd.Flags().StringVar(&spendFlags.by, "by", "", "break down by \"model\" or \"provider\"")
	spendCmd.Flags().StringVar(&spendFlags.format, "format", "text", "output format: text, json")
}

func runSpend(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(spendFlags.format)
	if err != nil {
		return err
	}
	if format == cli.FormatCSV {
		return fmt.Errorf("csv output is only available for record listings (tokenwatch recent)")
	}
	switch spendFlags.by {
	case "", "model", "provider":
	default:
		return fmt.Errorf("unknown breakdown %q: want model or provider", spendFlags.by)
	}

	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	ctx := context.Background()

	summary, err := m.GetSpend(ctx, spendFlags.period)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		out := struct {
			Summary    *report.Summary     `json:"summary"`
			ByModel    []report.GroupEntry `json:"by_model,omitempty"`
			ByProvider []report.GroupEntry `json:"by_provider,omitempty"`
		}{Summary: summary}
		switch spendFlags.by {
		case "model":
			if out.ByModel, err = m.GetSpendByModel(ctx, spendFlags.period); err != nil {
				return err
			}
		case "provider":
			if out.ByProvider, err = m.GetSpendByProvider(ctx, spendFlags.period); err != nil {
				return err
			}
		}
		return cli.WriteJSON(os.Stdout, out)
	}

	fmt.Printf("%s: $%.4f across %d calls (avg $%.4f/call)\n",
		summary.Period, summary.TotalCostUSD, summary.CallCount, summary.AvgCostPerCallUSD)
	fmt.Printf("tokens: %d in / %d out / %d total\n",
		summary.InputTokens, summary.OutputTokens, summary.TotalTokens)

	switch spendFlags.by {
	case "":
		return nil
	case "model":
		groups, err := m.GetSpendByModel(ctx, spendFlags.period)
		if err != nil {
			return err
		}
		printGroups(groups)
	case "provider":
		groups, err := m.GetSpendByProvider(ctx, spendFlags.period)
		if err != nil {
			return err
		}
		printGroups(groups)
	}
	return nil
}

func printGroups(groups []report.GroupEntry) {
	for _, g := range groups {
		fmt.Printf("  %-36s $%.4f  %d calls\n", g.Key, g.TotalCostUSD, g.CallCount)
	}
}

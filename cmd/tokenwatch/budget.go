package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/budget"
)

var budgetFlags struct {
	daily   float64
	weekly  float64
	monthly float64
	perCall float64
	alertAt float64
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage budget ceilings",
	Long: `Manage budget ceilings.

Ceilings are advisory: crossing one produces an alert but never blocks
a call from being recorded. A ceiling of 0 means unset.

Subcommands:
  set   - Replace the budget configuration
  show  - Show the active budget configuration`,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the budget configuration",
	Long: `Replace the whole budget configuration. Ceilings not given are
unset, not preserved.

Examples:
  tokenwatch budget set --daily 1.00 --monthly 20.00
  tokenwatch budget set --per-call 0.25 --alert-at 90`,
	RunE: runBudgetSet,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active budget configuration",
	RunE:  runBudgetShow,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
	budgetCmd.AddCommand(budgetSetCmd, budgetShowCmd)

	budgetSetCmd.Flags().Float64Var(&budgetFlags.daily, "daily", 0, "daily ceiling in USD (0 = unset)")
	budgetSetCmd.Flags().Float64Var(&budgetFlags.weekly, "weekly", 0, "weekly ceiling in USD (0 = unset)")
	budgetSetCmd.Flags().Float64Var(&budgetFlags.monthly, "monthly", 0, "monthly ceiling in USD (0 = unset)")
	budgetSetCmd.Flags().Float64Var(&budgetFlags.perCall, "per-call", 0, "per-call ceiling in USD (0 = unset)")
	budgetSetCmd.Flags().Float64Var(&budgetFlags.alertAt, "alert-at", 80, "warning threshold as percent of each ceiling")
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.SetBudget(&budget.Config{
		DailyUSD:       budgetFlags.daily,
		WeeklyUSD:      budgetFlags.weekly,
		MonthlyUSD:     budgetFlags.monthly,
		PerCallUSD:     budgetFlags.perCall,
		AlertAtPercent: budgetFlags.alertAt,
	}); err != nil {
		return err
	}

	fmt.Println("budget updated")
	return nil
}

func runBudgetShow(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	cfg := m.Budget()
	printCeiling := func(name string, v float64) {
		if v > 0 {
			fmt.Printf("  %-9s $%.2f\n", name, v)
		} else {
			fmt.Printf("  %-9s unset\n", name)
		}
	}
	printCeiling("daily", cfg.DailyUSD)
	printCeiling("weekly", cfg.WeeklyUSD)
	printCeiling("monthly", cfg.MonthlyUSD)
	printCeiling("per-call", cfg.PerCallUSD)
	fmt.Printf("  alert-at  %.0f%%\n", cfg.AlertAtPercent)
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/pricing"
)

var estimateFlags struct {
	model  string
	input  int64
	output int64
}

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the cost of a call without recording it",
	Long: `Estimate what a call would cost against the static price table.

Nothing is written to the ledger.

Examples:
  tokenwatch estimate --model claude-opus-4-6 --input 2000 --output 500`,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVar(&estimateFlags.model, "model", "", "model identifier (required)")
	estimateCmd.Flags().Int64Var(&estimateFlags.input, "input", 0, "input (prompt) token count")
	estimateCmd.Flags().Int64Var(&estimateFlags.output, "output", 0, "output (completion) token count")
	estimateCmd.MarkFlagRequired("model")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if estimateFlags.input < 0 || estimateFlags.output < 0 {
		return fmt.Errorf("token counts must be non-negative")
	}

	est := pricing.EstimateCost(estimateFlags.model, estimateFlags.input, estimateFlags.output)
	if !est.Known {
		fmt.Printf("%s: not in price table, estimate is $0\n", est.Model)
		return nil
	}

	fmt.Printf("%s (%s): $%.6f\n", est.Model, est.Provider, est.CostUSD)
	fmt.Printf("  input:  %d tokens @ $%.2f/1M\n", est.InputTokens, est.InputPerMillion)
	fmt.Printf("  output: %d tokens @ $%.2f/1M\n", est.OutputTokens, est.OutputPerMillion)
	return nil
}

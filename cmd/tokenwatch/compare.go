package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/pricing"
)

var compareFlags struct {
	input  int64
	output int64
	top    int
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare every model's cost on the same token mix",
	Long: `Price the same hypothetical call across every model in the price
table, cheapest first.

Examples:
  tokenwatch compare --input 2000 --output 500
  tokenwatch compare --input 2000 --output 500 --top 10`,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().Int64Var(&compareFlags.input, "input", 0, "input (prompt) token count")
	compareCmd.Flags().Int64Var(&compareFlags.output, "output", 0, "output (completion) token count")
	compareCmd.Flags().IntVar(&compareFlags.top, "top", 0, "show only the N cheapest models")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareFlags.input < 0 || compareFlags.output < 0 {
		return fmt.Errorf("token counts must be non-negative")
	}

	results := pricing.CompareModels(compareFlags.input, compareFlags.output)
	if compareFlags.top > 0 && compareFlags.top < len(results) {
		results = results[:compareFlags.top]
	}

	fmt.Printf("%d input / %d output tokens:\n", compareFlags.input, compareFlags.output)
	for _, est := range results {
		fmt.Printf("  %-36s %-10s $%.6f\n", est.Model, est.Provider, est.CostUSD)
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tokenwatch-hq/tokenwatch/pkg/tokenwatch"
)

var recordFlags struct {
	model     string
	input     int64
	output    int64
	task      string
	sessionID string
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a completed API call",
	Long: `Record a completed API call in the local ledger.

The call is priced against the static table at record time. Unknown
models are recorded at zero cost with a warning rather than rejected.

Examples:
  # Record a call
  tokenwatch record --model claude-haiku-4-5-20251001 --input 1200 --output 400

  # Tag it with a task and session
  tokenwatch record --model gpt-5.2 --input 800 --output 300 --task "summarize" --session dev-loop`,
	RunE: runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVar(&recordFlags.model, "model", "", "model identifier (required)")
	recordCmd.Flags().Int64Var(&recordFlags.input, "input", 0, "input (prompt) token count")
	recordCmd.Flags().Int64Var(&recordFlags.output, "output", 0, "output (completion) token count")
	recordCmd.Flags().StringVar(&recordFlags.task, "task", "", "optional task label")
	recordCmd.Flags().StringVar(&recordFlags.sessionID, "session", "", "optional session ID")
	recordCmd.MarkFlagRequired("model")
}

func runRecord(cmd *cobra.Command, args []string) error {
	m, err := newMonitor()
	if err != nil {
		return err
	}
	defer m.Close()

	rec, alerts, err := m.RecordUsage(context.Background(), &tokenwatch.UsageInput{
		Model:        recordFlags.model,
		InputTokens:  recordFlags.input,
		OutputTokens: recordFlags.output,
		TaskLabel:    recordFlags.task,
		SessionID:    recordFlags.sessionID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("recorded %s: %d in / %d out, $%.6f\n",
		rec.Model, rec.InputTokens, rec.OutputTokens, rec.CostUSD)
	if !rec.PricingKnown {
		fmt.Println("note: model not in price table, recorded at $0")
	}
	for _, a := range alerts {
		fmt.Printf("ALERT [%s] %s\n", a.Severity, a.Message)
	}
	return nil
}

// TokenWatch is a local usage and cost accounting tool for AI API calls.
//
// It keeps an append-only ledger of recorded calls, prices them against
// a static table, and reports spend, budgets, and optimization hints.
//
// Usage:
//
//	# Record a call
//	tokenwatch record --model claude-haiku-4-5-20251001 --input 1200 --output 400
//
//	# Show today's dashboard
//	tokenwatch status
//
//	# Estimate without recording
//	tokenwatch estimate --model claude-opus-4-6 --input 2000 --output 500
//
//	# Compare every model on the same token mix
//	tokenwatch compare --input 2000 --output 500
//
//	# Set budget ceilings
//	tokenwatch budget set --daily 1.00 --monthly 20.00
//
//	# Export a JSON report
//	tokenwatch export --period month --out report.json
package main

func main() {
	Execute()
}

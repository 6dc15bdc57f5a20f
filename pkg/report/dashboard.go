package report

import (
	"fmt"
	"strings"

	"tokenwatch-hq/tokenwatch/pkg/budget"
)

const barWidth = 20

// FormatDashboard renders a terminal dashboard: today's usage in
// detail, week and month totals, the per-model breakdown, budget
// utilization, and recent alerts. Only configured budget ceilings are
// shown.
func FormatDashboard(today, week, month *Summary, byModel []GroupEntry, cfg *budget.Config, spend map[budget.Scope]float64, alerts []budget.Alert) string {
	var b strings.Builder

	s := today
	title := "TokenWatch"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	fmt.Fprintf(&b, "Today:  $%.4f across %d calls (avg $%.4f/call)\n",
		s.TotalCostUSD, s.CallCount, s.AvgCostPerCallUSD)
	fmt.Fprintf(&b, "Week:   $%.4f across %d calls\n", week.TotalCostUSD, week.CallCount)
	fmt.Fprintf(&b, "Month:  $%.4f across %d calls\n", month.TotalCostUSD, month.CallCount)
	fmt.Fprintf(&b, "Tokens: %d in / %d out / %d total today\n",
		s.InputTokens, s.OutputTokens, s.TotalTokens)

	if len(byModel) > 0 {
		b.WriteString("\nBy model:\n")
		keyWidth := 0
		for _, g := range byModel {
			if len(g.Key) > keyWidth {
				keyWidth = len(g.Key)
			}
		}
		for _, g := range byModel {
			share := 0.0
			if s.TotalCostUSD > 0 {
				share = g.TotalCostUSD / s.TotalCostUSD
			}
			fmt.Fprintf(&b, "  %-*s  $%.4f  %s %5.1f%%\n",
				keyWidth, g.Key, g.TotalCostUSD, bar(share), share*100)
		}
	}

	budgetLines := formatBudgets(cfg, spend)
	if len(budgetLines) > 0 {
		b.WriteString("\nBudgets:\n")
		for _, line := range budgetLines {
			b.WriteString(line + "\n")
		}
	}

	if len(alerts) > 0 {
		b.WriteString("\nRecent alerts:\n")
		for _, a := range alerts {
			fmt.Fprintf(&b, "  [%s] %s\n", a.Severity, a.Message)
		}
	}

	return b.String()
}

func formatBudgets(cfg *budget.Config, spend map[budget.Scope]float64) []string {
	if cfg == nil {
		return nil
	}
	rows := []struct {
		scope budget.Scope
		limit float64
	}{
		{budget.ScopeDaily, cfg.DailyUSD},
		{budget.ScopeWeekly, cfg.WeeklyUSD},
		{budget.ScopeMonthly, cfg.MonthlyUSD},
	}

	var out []string
	for _, row := range rows {
		if row.limit <= 0 {
			continue
		}
		observed := spend[row.scope]
		used := observed / row.limit
		out = append(out, fmt.Sprintf("  %-8s $%.4f / $%.2f  %s %5.1f%%",
			row.scope, observed, row.limit, bar(used), used*100))
	}
	return out
}

// bar renders a fixed-width usage bar, clamped to full.
func bar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

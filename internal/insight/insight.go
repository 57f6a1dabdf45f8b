// Package insight turns a month of transactions plus the budget set into
// ranked natural-language observations. Generation is deterministic and
// never fails; rules run in a fixed order with the most critical messages
// first.
package insight

import (
	"fmt"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
)

// Generate evaluates the insight rules over one month of transactions and
// the full budget set. Each rule appends zero or one message; multiple
// rules may fire on the same input.
func Generate(monthTxns []core.Transaction, budgets []core.Budget) []string {
	if len(monthTxns) == 0 {
		return []string{"👋 Welcome! Add your first transaction to get personalized insights."}
	}

	var insights []string

	// Total budget utilization. The [50,75] band deliberately stays
	// silent; do not fill the gap.
	totals := aggregate.ComputeTotals(monthTxns, budgets)
	if totals.Budget.Cents > 0 {
		percentUsed := float64(totals.Spent.Cents) / float64(totals.Budget.Cents) * 100
		switch {
		case percentUsed > 90:
			insights = append(insights, fmt.Sprintf(
				"⚠️ Critical Alert: you have used %.1f%% of your total budget!", percentUsed))
		case percentUsed > 75:
			insights = append(insights, fmt.Sprintf(
				"⚠️ Warning: you have used %.1f%% of your total budget.", percentUsed))
		case percentUsed < 50:
			insights = append(insights, fmt.Sprintf(
				"✅ Good Job: you are well within your budget (%.1f%% used).", percentUsed))
		}
	}

	// Top spending category, ties resolved to the first encountered.
	if cat, amount, ok := aggregate.TopCategory(monthTxns); ok {
		insights = append(insights, fmt.Sprintf(
			"📊 Top Spending: you spent the most on %s (₹%s).", cat, amount))
	}

	// Per-budget overrun scan in budget-list order. Over-budget and
	// near-limit are mutually exclusive for a category.
	spend, _ := aggregate.SpendByCategory(monthTxns)
	for _, b := range budgets {
		spent := spend[b.Category]
		if spent.Cents > b.Limit.Cents {
			insights = append(insights, fmt.Sprintf(
				"🚨 Over Budget: you exceeded your %s budget by ₹%s!",
				b.Category, spent.Sub(b.Limit)))
		} else if float64(spent.Cents) > 0.8*float64(b.Limit.Cents) {
			insights = append(insights, fmt.Sprintf(
				"⚠️ Near Limit: you are nearing your limit for %s.", b.Category))
		}
	}

	// Raw weekend-vs-weekday sums, no normalization by day count.
	var weekend, weekday core.Money
	for _, t := range monthTxns {
		if t.Date.Weekend() {
			weekend = weekend.Add(t.Amount)
		} else {
			weekday = weekday.Add(t.Amount)
		}
	}
	if weekend.Cents > weekday.Cents {
		insights = append(insights, "📅 Weekend Spender: you tend to spend more on weekends. Keep an eye on it!")
	}

	return insights
}

// Package aggregate computes spend-vs-budget views from in-memory
// snapshots of the ledger. Everything here is a pure function: callers
// supply already-filtered transaction and budget slices (typically one
// calendar month) and get ephemeral derived values back.
package aggregate

import "fintrack/internal/core"

// Totals summarizes a transaction slice against the full budget set.
// Remaining may be negative, which signals overspend.
type Totals struct {
	Spent     core.Money
	Budget    core.Money
	Remaining core.Money
}

// SpendByCategory sums transaction amounts per category. The second return
// value lists categories in first-encounter order, which downstream
// consumers use for deterministic iteration.
func SpendByCategory(txns []core.Transaction) (map[string]core.Money, []string) {
	sums := make(map[string]core.Money, 8)
	var order []string
	for _, t := range txns {
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	return sums, order
}

// ComputeCategorySpend joins per-category spend with budget limits.
// Budgeted categories come first in budget-list order (spent may be zero);
// categories with spend but no budget follow in first-encounter order with
// a zero limit.
func ComputeCategorySpend(txns []core.Transaction, budgets []core.Budget) []core.CategorySpend {
	sums, order := SpendByCategory(txns)

	budgeted := make(map[string]bool, len(budgets))
	out := make([]core.CategorySpend, 0, len(budgets)+len(order))
	for _, b := range budgets {
		budgeted[b.Category] = true
		out = append(out, core.CategorySpend{
			Category: b.Category,
			Spent:    sums[b.Category],
			Limit:    b.Limit,
		})
	}
	for _, cat := range order {
		if budgeted[cat] {
			continue
		}
		out = append(out, core.CategorySpend{Category: cat, Spent: sums[cat]})
	}
	return out
}

// ComputeTotals sums all transaction amounts and all budget limits.
func ComputeTotals(txns []core.Transaction, budgets []core.Budget) Totals {
	var t Totals
	for _, tx := range txns {
		t.Spent = t.Spent.Add(tx.Amount)
	}
	for _, b := range budgets {
		t.Budget = t.Budget.Add(b.Limit)
	}
	t.Remaining = t.Budget.Sub(t.Spent)
	return t
}

// TopCategory returns the category with the highest summed spend and that
// sum. Ties resolve to the category first encountered in transaction
// order. ok is false when there are no transactions.
func TopCategory(txns []core.Transaction) (category string, amount core.Money, ok bool) {
	sums, order := SpendByCategory(txns)
	for _, cat := range order {
		if !ok || sums[cat].Cents > amount.Cents {
			category, amount, ok = cat, sums[cat], true
		}
	}
	return category, amount, ok
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestTransactionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := core.Transaction{
		Date:        core.NewDate(2024, 6, 15),
		Description: "Swiggy order",
		Amount:      core.Money{Cents: 45050},
		Category:    "Food",
	}

	id, err := repo.InsertTransaction(ctx, in)
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want positive store-assigned id", id)
	}

	all, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d transactions, want 1", len(all))
	}

	got := all[0]
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Date.ISO() != "2024-06-15" {
		t.Errorf("Date = %s, want 2024-06-15", got.Date.ISO())
	}
	if got.Description != in.Description {
		t.Errorf("Description = %q, want %q", got.Description, in.Description)
	}
	if got.Amount.Cents != in.Amount.Cents {
		t.Errorf("Amount = %d cents, want %d", got.Amount.Cents, in.Amount.Cents)
	}
	if got.Category != in.Category {
		t.Errorf("Category = %q, want %q", got.Category, in.Category)
	}
}

func TestDuplicateTransactionsPermitted(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:        core.NewDate(2024, 6, 15),
		Description: "same coffee twice",
		Amount:      core.Money{Cents: 300},
		Category:    "Food",
	}

	id1, err := repo.InsertTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	id2, err := repo.InsertTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if id1 == id2 {
		t.Errorf("duplicate rows should get distinct ids, both = %d", id1)
	}

	all, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d transactions, want 2 (ledger keeps duplicates)", len(all))
	}
}

func TestListTransactionsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.InsertTransaction(ctx, core.Transaction{
			Date:        core.NewDate(2024, 6, 10+i),
			Description: "entry",
			Amount:      core.Money{Cents: int64(100 * (i + 1))},
			Category:    "Other",
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	first, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("first ListTransactions: %v", err)
	}
	second, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("second ListTransactions: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between reads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestListTransactionsByMonth(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	dates := []core.Date{
		core.NewDate(2024, 6, 1),
		core.NewDate(2024, 6, 30),
		core.NewDate(2024, 7, 1),
		core.NewDate(2023, 6, 15),
	}
	for _, d := range dates {
		if _, err := repo.InsertTransaction(ctx, core.Transaction{
			Date: d, Description: "x", Amount: core.Money{Cents: 100}, Category: "Other",
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	june, err := repo.ListTransactionsByMonth(ctx, 2024, 6)
	if err != nil {
		t.Fatalf("ListTransactionsByMonth: %v", err)
	}
	if len(june) != 2 {
		t.Fatalf("got %d June 2024 transactions, want 2", len(june))
	}
	for _, tx := range june {
		if tx.Date.Year() != 2024 || int(tx.Date.Month()) != 6 {
			t.Errorf("month filter leaked %s", tx.Date.ISO())
		}
	}
}

func TestUpsertBudgetReplacesLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.UpsertBudget(ctx, core.Budget{Category: "Food", Limit: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := repo.UpsertBudget(ctx, core.Budget{Category: "Food", Limit: core.Money{Cents: 20000}}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	budgets, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("got %d budgets, want exactly 1 per category", len(budgets))
	}
	if budgets[0].Limit.Cents != 20000 {
		t.Errorf("limit = %d, want replaced value 20000", budgets[0].Limit.Cents)
	}
}

func TestListBudgetsStableOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, cat := range []string{"Travel", "Food", "Rent"} {
		if err := repo.UpsertBudget(ctx, core.Budget{Category: cat, Limit: core.Money{Cents: 100}}); err != nil {
			t.Fatalf("upsert %s: %v", cat, err)
		}
	}
	// Updating an existing category must not move it.
	if err := repo.UpsertBudget(ctx, core.Budget{Category: "Travel", Limit: core.Money{Cents: 500}}); err != nil {
		t.Fatalf("update Travel: %v", err)
	}

	budgets, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	want := []string{"Travel", "Food", "Rent"}
	if len(budgets) != len(want) {
		t.Fatalf("got %d budgets, want %d", len(budgets), len(want))
	}
	for i, cat := range want {
		if budgets[i].Category != cat {
			t.Errorf("budgets[%d] = %q, want %q", i, budgets[i].Category, cat)
		}
	}
}

func TestReset(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertTransaction(ctx, core.Transaction{
		Date: core.NewDate(2024, 6, 1), Description: "x",
		Amount: core.Money{Cents: 100}, Category: "Other",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.UpsertBudget(ctx, core.Budget{Category: "Food", Limit: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	txns, err := repo.ListTransactions(ctx)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	budgets, err := repo.ListBudgets(ctx)
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(txns) != 0 || len(budgets) != 0 {
		t.Errorf("after reset: %d transactions, %d budgets, want 0/0", len(txns), len(budgets))
	}

	// Autoincrement rewinds: the next insert starts over at id 1.
	id, err := repo.InsertTransaction(ctx, core.Transaction{
		Date: core.NewDate(2024, 6, 2), Description: "fresh",
		Amount: core.Money{Cents: 100}, Category: "Other",
	})
	if err != nil {
		t.Fatalf("insert after reset: %v", err)
	}
	if id != 1 {
		t.Errorf("first id after reset = %d, want 1", id)
	}
}

// Package storage persists the transaction ledger and the per-category
// budgets in SQLite. Every operation acquires a pooled connection for the
// duration of the single statement and releases it before returning; no
// state is cached between calls.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"
	"fintrack/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertTransaction appends one ledger entry and returns the assigned id.
// Duplicates are permitted; it is a ledger, not a set.
func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (txn_date, description, amount, category) VALUES (?, ?, ?, ?)`,
		t.Date.ISO(), t.Description, t.Amount.Amount(), t.Category)
	if err != nil {
		return 0, persistErr("insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistErr("insert transaction id", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		log.FieldID, id,
		log.FieldDate, t.Date.ISO(),
		log.FieldDescription, t.Description,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldCategory, t.Category)

	return id, nil
}

// ListTransactions returns the full ledger. Dataset size is assumed to stay
// at personal-finance volumes, so there is no pagination.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, txn_date, description, amount, category FROM transactions`)
}

// ListTransactionsByMonth returns ledger entries for one calendar month,
// matching on the ISO date prefix.
func (r *SQLiteRepository) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	prefix := fmt.Sprintf("%04d-%02d-%%", year, month)
	return r.queryTransactions(ctx,
		`SELECT id, txn_date, description, amount, category FROM transactions WHERE txn_date LIKE ?`,
		prefix)
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("list transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t      core.Transaction
			isoStr string
			amount float64
			desc   sql.NullString
			cat    sql.NullString
		)
		if err := rows.Scan(&t.ID, &isoStr, &desc, &amount, &cat); err != nil {
			return nil, persistErr("scan transaction", err)
		}
		d, err := core.ParseISO(isoStr)
		if err != nil {
			return nil, persistErr("scan transaction date", fmt.Errorf("%q: %w", isoStr, err))
		}
		t.Date = d
		t.Description = desc.String
		t.Amount = core.MoneyFromAmount(amount)
		t.Category = cat.String
		if t.Category == "" {
			t.Category = "Other"
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list transactions", err)
	}
	return out, nil
}

// UpsertBudget creates or replaces the limit for a category. The UNIQUE
// constraint on category guarantees at most one row per category.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category, budget_limit) VALUES (?, ?)
		 ON CONFLICT(category) DO UPDATE SET budget_limit = excluded.budget_limit`,
		b.Category, b.Limit.Amount())
	if err != nil {
		return persistErr("upsert budget", err)
	}

	slog.InfoContext(ctx, "Budget set",
		log.FieldCategory, b.Category,
		log.FieldLimitCents, b.Limit.Cents)

	return nil
}

// ListBudgets returns all budgets ordered by creation, so callers that scan
// budgets iterate in a stable budget-list order.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, budget_limit FROM budgets ORDER BY id`)
	if err != nil {
		return nil, persistErr("list budgets", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b     core.Budget
			limit float64
		)
		if err := rows.Scan(&b.Category, &limit); err != nil {
			return nil, persistErr("scan budget", err)
		}
		b.Limit = core.MoneyFromAmount(limit)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list budgets", err)
	}
	return out, nil
}

// Reset deletes every transaction and budget and rewinds the autoincrement
// counters. It exists for the explicit full-store reset operation only.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	for _, stmt := range []string{`DELETE FROM transactions`, `DELETE FROM budgets`} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return persistErr("reset", err)
		}
	}
	// sqlite_sequence only exists once an AUTOINCREMENT row has been
	// written; a failure here just means there is nothing to rewind.
	_, _ = r.db.ExecContext(ctx,
		`DELETE FROM sqlite_sequence WHERE name IN ('transactions', 'budgets')`)

	slog.InfoContext(ctx, "Ledger reset, all records deleted")
	return nil
}

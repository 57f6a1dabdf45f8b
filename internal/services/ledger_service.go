// Package services orchestrates the stores, the categorizer, the
// aggregator and the insight engine behind the API the presentation layer
// consumes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/aggregate"
	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/importer"
	"fintrack/internal/insight"
)

// Store is the persistence surface the service needs. *storage.SQLiteRepository
// implements it.
type Store interface {
	InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
	UpsertBudget(ctx context.Context, b core.Budget) error
	ListBudgets(ctx context.Context) ([]core.Budget, error)
	Reset(ctx context.Context) error
}

// AutoCategory requests automatic categorization on manual entry.
const AutoCategory = "Auto"

// MonthlyReport bundles the dashboard numbers for one calendar month.
type MonthlyReport struct {
	Year             int
	Month            int
	TransactionCount int
	Totals           aggregate.Totals
	Categories       []core.CategorySpend
}

type LedgerService struct {
	store Store
}

func NewLedgerService(store Store) *LedgerService {
	return &LedgerService{store: store}
}

// AddTransaction validates a manual entry, resolves its category and writes
// it to the ledger. Validation happens before any store mutation; an empty
// or Auto category runs the categorizer.
func (s *LedgerService) AddTransaction(ctx context.Context, date core.Date, description string, amount core.Money, category string) (int64, error) {
	if category == "" || strings.EqualFold(category, AutoCategory) {
		category = categorize.Categorize(description)
	}

	t := core.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}

	id, err := s.store.InsertTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	return id, nil
}

// Transactions returns the full ledger.
func (s *LedgerService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

// MonthTransactions returns the ledger entries for one calendar month.
func (s *LedgerService) MonthTransactions(ctx context.Context, year, month int) ([]core.Transaction, error) {
	return s.store.ListTransactionsByMonth(ctx, year, month)
}

// SetBudget upserts the monthly limit for a category.
func (s *LedgerService) SetBudget(ctx context.Context, category string, limit core.Money) error {
	b := core.Budget{Category: category, Limit: limit}
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertBudget(ctx, b); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return nil
}

// CheckBudgets joins the full ledger against the budget set and returns
// per-category spend vs limit, budgeted categories first.
func (s *LedgerService) CheckBudgets(ctx context.Context) ([]core.CategorySpend, error) {
	txns, budgets, err := s.readBoth(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return aggregate.ComputeCategorySpend(txns, budgets), nil
}

// Report computes the dashboard view for one month: totals, remaining
// budget and the per-category breakdown.
func (s *LedgerService) Report(ctx context.Context, year, month int) (MonthlyReport, error) {
	txns, budgets, err := s.readBoth(ctx, year, month)
	if err != nil {
		return MonthlyReport{}, err
	}
	return MonthlyReport{
		Year:             year,
		Month:            month,
		TransactionCount: len(txns),
		Totals:           aggregate.ComputeTotals(txns, budgets),
		Categories:       aggregate.ComputeCategorySpend(txns, budgets),
	}, nil
}

// Insights generates the ranked observations for one month.
func (s *LedgerService) Insights(ctx context.Context, year, month int) ([]string, error) {
	txns, budgets, err := s.readBoth(ctx, year, month)
	if err != nil {
		return nil, err
	}
	return insight.Generate(txns, budgets), nil
}

// readBoth fetches transactions and budgets concurrently. A zero year
// selects the full ledger instead of one month.
func (s *LedgerService) readBoth(ctx context.Context, year, month int) ([]core.Transaction, []core.Budget, error) {
	var (
		txns    []core.Transaction
		budgets []core.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if year == 0 {
			txns, err = s.store.ListTransactions(gctx)
		} else {
			txns, err = s.store.ListTransactionsByMonth(gctx, year, month)
		}
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.store.ListBudgets(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("read ledger snapshot: %w", err)
	}
	return txns, budgets, nil
}

// Import drains a row source through the bulk-import pipeline. Source
// errors (unreadable file, missing columns) surface before any row is
// written; row-level failures are contained in the result.
func (s *LedgerService) Import(ctx context.Context, source importer.RowSource) (importer.Result, error) {
	rows, err := source.Rows(ctx)
	if err != nil {
		return importer.Result{}, fmt.Errorf("read import source: %w", err)
	}
	return importer.New(s.store).ImportRows(ctx, rows), nil
}

// Reset wipes the ledger and all budgets.
func (s *LedgerService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset ledger: %w", err)
	}
	slog.InfoContext(ctx, "Ledger reset requested and completed")
	return nil
}

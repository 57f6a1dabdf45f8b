// Package importer is the bulk-import pipeline: it normalizes raw tabular
// rows, categorizes them and writes them through the transaction store,
// tolerating per-row failures. No single bad row ever aborts a batch.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

type (
	// Row is one raw record from an external tabular source, fields still
	// unparsed.
	Row struct {
		Date        string
		Description string
		Amount      string
	}

	// RowSource yields the rows of an external source (CSV file, Google
	// Sheet). Sources validate their own headers before returning rows.
	RowSource interface {
		Rows(ctx context.Context) ([]Row, error)
	}

	// RowError records why a single row was skipped. Line is 1-based over
	// the data rows (the header is not counted).
	RowError struct {
		Line int
		Err  error
	}

	// Result is the outcome of one import batch.
	Result struct {
		Imported  int
		Failed    int
		RowErrors []RowError
	}
)

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// TransactionWriter is the slice of the store the pipeline needs.
type TransactionWriter interface {
	InsertTransaction(ctx context.Context, t core.Transaction) (int64, error)
}

type Importer struct {
	store TransactionWriter
}

func New(store TransactionWriter) *Importer {
	return &Importer{store: store}
}

// ImportRows processes each row independently: lenient day-first date
// parsing with a current-date fallback, currency-symbol stripping before
// amount parsing, automatic categorization, then a store write. A row that
// still fails is counted and skipped; the batch continues.
func (imp *Importer) ImportRows(ctx context.Context, rows []Row) Result {
	var res Result
	for i, row := range rows {
		if err := imp.importRow(ctx, row); err != nil {
			res.Failed++
			res.RowErrors = append(res.RowErrors, RowError{Line: i + 1, Err: err})
			slog.WarnContext(ctx, "Import row skipped", log.FieldLine, i+1, log.FieldError, err)
			continue
		}
		res.Imported++
	}

	slog.InfoContext(ctx, "Import batch finished",
		log.FieldImported, res.Imported,
		log.FieldFailed, res.Failed)

	return res
}

func (imp *Importer) importRow(ctx context.Context, row Row) error {
	// Unparseable dates fall back to today instead of rejecting the row.
	date, err := core.ParseDateLenient(row.Date)
	if err != nil {
		date = core.Today()
	}

	amount, err := core.ParseAmount(row.Amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", row.Amount, err)
	}

	t := core.Transaction{
		Date:        date,
		Description: row.Description,
		Amount:      amount,
		Category:    categorize.Categorize(row.Description),
	}
	if _, err := imp.store.InsertTransaction(ctx, t); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}
	return nil
}

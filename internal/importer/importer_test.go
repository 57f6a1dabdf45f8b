package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/core"
)

type fakeStore struct {
	saved    []core.Transaction
	failOn   string // description that triggers a write failure
	writeErr error
}

func (f *fakeStore) InsertTransaction(_ context.Context, t core.Transaction) (int64, error) {
	if f.failOn != "" && t.Description == f.failOn {
		return 0, f.writeErr
	}
	f.saved = append(f.saved, t)
	return int64(len(f.saved)), nil
}

func TestImportRowsPartialFailure(t *testing.T) {
	store := &fakeStore{}
	imp := New(store)

	rows := []Row{
		{Date: "15/03/2024", Description: "Swiggy order", Amount: "₹450.50"},
		{Date: "16/03/2024", Description: "Uber ride", Amount: "$12.00"},
		{Date: "17/03/2024", Description: "Amazon", Amount: "1,250.00"},
		{Date: "18/03/2024", Description: "broken row", Amount: "not-a-number"},
		{Date: "19/03/2024", Description: "Netflix", Amount: "199"},
	}

	res := imp.ImportRows(context.Background(), rows)
	if res.Imported != 4 {
		t.Errorf("Imported = %d, want 4", res.Imported)
	}
	if res.Failed != 1 {
		t.Errorf("Failed = %d, want 1", res.Failed)
	}
	if len(store.saved) != 4 {
		t.Errorf("persisted %d transactions, want exactly 4", len(store.saved))
	}
	if len(res.RowErrors) != 1 {
		t.Fatalf("RowErrors = %v, want one entry", res.RowErrors)
	}
	if res.RowErrors[0].Line != 4 {
		t.Errorf("failed line = %d, want 4", res.RowErrors[0].Line)
	}
	if !errors.Is(res.RowErrors[0], core.ErrInvalidAmount) {
		t.Errorf("row error should wrap the amount parse failure: %v", res.RowErrors[0])
	}
}

func TestImportRowsCategorizes(t *testing.T) {
	store := &fakeStore{}
	imp := New(store)

	imp.ImportRows(context.Background(), []Row{
		{Date: "15/03/2024", Description: "Zomato dinner", Amount: "₹1,250"},
		{Date: "15/03/2024", Description: "mystery charge", Amount: "100"},
	})

	if len(store.saved) != 2 {
		t.Fatalf("persisted %d, want 2", len(store.saved))
	}
	if store.saved[0].Category != "Food" {
		t.Errorf("category = %q, want Food", store.saved[0].Category)
	}
	// The thousands comma must not shift the magnitude.
	if store.saved[0].Amount.Cents != 125000 {
		t.Errorf("amount = %d cents, want 125000", store.saved[0].Amount.Cents)
	}
	if store.saved[1].Category != "Other" {
		t.Errorf("category = %q, want Other fallback", store.saved[1].Category)
	}
}

func TestImportRowsDateFallback(t *testing.T) {
	store := &fakeStore{}
	imp := New(store)

	res := imp.ImportRows(context.Background(), []Row{
		{Date: "garbage-date", Description: "fallback row", Amount: "50"},
	})
	if res.Imported != 1 || res.Failed != 0 {
		t.Fatalf("bad date must not fail the row: %+v", res)
	}
	if got, want := store.saved[0].Date.ISO(), core.Today().ISO(); got != want {
		t.Errorf("fallback date = %s, want today (%s)", got, want)
	}
}

func TestImportRowsStoreFailureCounted(t *testing.T) {
	store := &fakeStore{failOn: "doomed", writeErr: errors.New("disk full")}
	imp := New(store)

	res := imp.ImportRows(context.Background(), []Row{
		{Date: "15/03/2024", Description: "fine", Amount: "10"},
		{Date: "15/03/2024", Description: "doomed", Amount: "10"},
		{Date: "15/03/2024", Description: "also fine", Amount: "10"},
	})
	if res.Imported != 2 || res.Failed != 1 {
		t.Errorf("got imported=%d failed=%d, want 2/1", res.Imported, res.Failed)
	}
	if len(store.saved) != 2 {
		t.Errorf("persisted %d, want 2 despite the store failure", len(store.saved))
	}
}

func TestImportRowsEmptyBatch(t *testing.T) {
	imp := New(&fakeStore{})
	res := imp.ImportRows(context.Background(), nil)
	if res.Imported != 0 || res.Failed != 0 || len(res.RowErrors) != 0 {
		t.Errorf("empty batch = %+v, want zero result", res)
	}
}

func TestReadCSV(t *testing.T) {
	data := `Date,Description,Amount
15/03/2024,Swiggy order,"₹450.50"
16/03/2024,Uber ride,120
`
	rows, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := Row{Date: "15/03/2024", Description: "Swiggy order", Amount: "₹450.50"}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}
}

func TestReadCSVColumnOrderIrrelevant(t *testing.T) {
	data := `Amount,Date,Description
300,15/03/2024,Dinner
`
	rows, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if rows[0].Amount != "300" || rows[0].Date != "15/03/2024" || rows[0].Description != "Dinner" {
		t.Errorf("column mapping wrong: %+v", rows[0])
	}
}

func TestReadCSVMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		missing []string
	}{
		{
			name:    "missing amount",
			data:    "Date,Description\n15/03/2024,x\n",
			missing: []string{"Amount"},
		},
		{
			name:    "case sensitive headers",
			data:    "date,description,amount\n15/03/2024,x,10\n",
			missing: []string{"Date", "Description", "Amount"},
		},
		{
			name:    "empty input",
			data:    "",
			missing: []string{"Date", "Description", "Amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			var mce *MissingColumnsError
			if !errors.As(err, &mce) {
				t.Fatalf("error = %v, want *MissingColumnsError", err)
			}
			if len(mce.Columns) != len(tt.missing) {
				t.Fatalf("missing = %v, want %v", mce.Columns, tt.missing)
			}
			for i, col := range tt.missing {
				if mce.Columns[i] != col {
					t.Errorf("missing[%d] = %q, want %q", i, mce.Columns[i], col)
				}
			}
		})
	}
}

func TestCSVSourceRows(t *testing.T) {
	src := NewCSVSource(strings.NewReader("Date,Description,Amount\n1/6/2024,Cafe,90\n"))
	rows, err := src.Rows(context.Background())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Description != "Cafe" {
		t.Errorf("rows = %+v", rows)
	}
}

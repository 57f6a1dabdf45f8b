package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Required header names, case-sensitive, any column position.
var requiredColumns = []string{"Date", "Description", "Amount"}

// MissingColumnsError reports required columns absent from the header row.
// It is returned before any row is imported.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// CSVSource reads import rows from CSV data.
type CSVSource struct {
	reader io.Reader
}

func NewCSVSource(r io.Reader) *CSVSource {
	return &CSVSource{reader: r}
}

// Rows parses the CSV, validates the header and maps each record to a Row.
// Column order in the file does not matter.
func (s *CSVSource) Rows(_ context.Context) ([]Row, error) {
	return ReadCSV(s.reader)
}

// ReadCSV parses CSV data into import rows. The first record must be a
// header containing Date, Description and Amount; a *MissingColumnsError
// names any that are absent.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Columns: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		rows = append(rows, Row{
			Date:        field(record, idx["Date"]),
			Description: field(record, idx["Description"]),
			Amount:      field(record, idx["Amount"]),
		})
	}
	return rows, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Package google reads bulk-import rows from a Google Sheets spreadsheet,
// authenticated with a service account. It is an alternate RowSource next
// to CSV files; the sheet must carry the same Date/Description/Amount
// header.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"fintrack/internal/importer"
	"fintrack/internal/log"

	"github.com/avast/retry-go"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ importer.RowSource = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet. The spreadsheet
// ID and sheet name come from configuration; service account credentials
// come from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID (set GOOGLE_SPREADSHEET_ID)")
	}

	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Rows fetches the sheet and maps it to import rows. Rate-limited requests
// are retried before giving up.
func (c *Client) Rows(ctx context.Context) ([]importer.Row, error) {
	readRange := fmt.Sprintf("%s!A:Z", c.sheetName)

	var resp *gsheet.ValueRange
	err := retry.Do(
		func() error {
			var err error
			resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, readRange).
				Context(ctx).
				Do()
			return err
		},
		retry.RetryIf(func(err error) bool {
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
				slog.WarnContext(ctx, "Sheets API rate limited, will retry", log.FieldError, err)
				return true
			}
			return false
		}),
		retry.Attempts(3),
		retry.Delay(30*time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet values: %w", err)
	}

	rows, err := mapValues(resp.Values)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Fetched import rows from sheet",
		log.FieldSheet, c.sheetName,
		log.FieldRows, len(rows))

	return rows, nil
}

// mapValues converts the Sheets values matrix to import rows using the
// header row, enforcing the same required columns as the CSV source.
func mapValues(values [][]interface{}) ([]importer.Row, error) {
	if len(values) == 0 {
		return nil, &importer.MissingColumnsError{Columns: []string{"Date", "Description", "Amount"}}
	}

	header := toStrings(values[0])
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, col := range []string{"Date", "Description", "Amount"} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &importer.MissingColumnsError{Columns: missing}
	}

	rows := make([]importer.Row, 0, len(values)-1)
	for _, v := range values[1:] {
		record := toStrings(v)
		rows = append(rows, importer.Row{
			Date:        safeGet(record, idx["Date"]),
			Description: safeGet(record, idx["Description"]),
			Amount:      safeGet(record, idx["Amount"]),
		})
	}
	return rows, nil
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

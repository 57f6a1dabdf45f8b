package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fintrack/internal/importer"
	gsheet "fintrack/internal/sheets/google"
)

var flagImportSheet bool

var importCmd = &cobra.Command{
	Use:   "import [FILE]",
	Short: "Bulk-import transactions from a CSV file or Google Sheet",
	Long: "Import rows with Date, Description and Amount columns. Dates are\n" +
		"parsed day-first with a current-date fallback; amounts may carry\n" +
		"currency symbols and thousands commas. Bad rows are skipped and\n" +
		"counted, never aborting the batch.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportSheet, "sheet", false, "Import from the configured Google Sheet instead of a file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	var source importer.RowSource
	switch {
	case flagImportSheet:
		client, err := gsheet.New(cmd.Context(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return fmt.Errorf("google sheets source: %w", err)
		}
		source = client
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		source = importer.NewCSVSource(f)
	default:
		return errors.New("provide a CSV file path or --sheet")
	}

	res, err := svc.Import(cmd.Context(), source)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d transactions.\n", res.Imported)
	if res.Failed > 0 {
		fmt.Printf("Skipped %d rows due to errors:\n", res.Failed)
		for _, re := range res.RowErrors {
			fmt.Printf("  row %d: %v\n", re.Line, re.Err)
		}
	}
	return nil
}

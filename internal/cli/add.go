package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

var (
	flagAddDate     string
	flagAddCategory string
)

var addCmd = &cobra.Command{
	Use:   "add DESCRIPTION AMOUNT",
	Short: "Record a transaction",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&flagAddDate, "date", "", "Transaction date (day-first or ISO, default today)")
	addCmd.Flags().StringVar(&flagAddCategory, "category", services.AutoCategory, "Category (default: auto-categorize)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	date := core.Today()
	if flagAddDate != "" {
		if date, err = core.ParseDateLenient(flagAddDate); err != nil {
			return fmt.Errorf("invalid date %q", flagAddDate)
		}
	}

	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	id, err := svc.AddTransaction(cmd.Context(), date, args[0], amount, flagAddCategory)
	if err != nil {
		return err
	}

	fmt.Printf("Added #%d: %s (₹%s) on %s\n", id, args[0], amount, date.ISO())
	return nil
}

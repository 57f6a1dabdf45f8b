package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Monthly overview: totals, remaining budget and category breakdown",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every recorded transaction",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(listCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	year, month, err := monthArgs()
	if err != nil {
		return err
	}

	rep, err := svc.Report(cmd.Context(), year, month)
	if err != nil {
		return err
	}

	fmt.Printf("Overview for %04d-%02d (%d transactions)\n", rep.Year, rep.Month, rep.TransactionCount)
	fmt.Printf("  Total spent:  ₹%s\n", rep.Totals.Spent)
	fmt.Printf("  Total budget: ₹%s\n", rep.Totals.Budget)
	fmt.Printf("  Remaining:    ₹%s\n", rep.Totals.Remaining)
	if len(rep.Categories) > 0 {
		fmt.Println("  By category:")
		for _, cs := range rep.Categories {
			fmt.Printf("    %-15s ₹%s\n", cs.Category, cs.Spent)
		}
	}
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	txns, err := svc.Transactions(cmd.Context())
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("No transactions recorded yet.")
		return nil
	}

	for _, t := range txns {
		fmt.Printf("#%-5d %s %12s  %-15s %s\n", t.ID, t.Date.ISO(), t.Amount, t.Category, t.Description)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fintrack/internal/core"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage category budgets",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set CATEGORY LIMIT",
	Short: "Set or replace the monthly limit for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show spend against every budget",
	Args:  cobra.NoArgs,
	RunE:  runBudgetStatus,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetStatusCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	limit, err := core.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", args[1], err)
	}

	if err := svc.SetBudget(cmd.Context(), args[0], limit); err != nil {
		return err
	}

	fmt.Printf("Budget set: %s = ₹%s/month\n", args[0], limit)
	return nil
}

func runBudgetStatus(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	spend, err := svc.CheckBudgets(cmd.Context())
	if err != nil {
		return err
	}
	if len(spend) == 0 {
		fmt.Println("No budgets or transactions yet.")
		return nil
	}

	fmt.Printf("%-15s %12s %12s %8s\n", "CATEGORY", "SPENT", "LIMIT", "USED")
	for _, cs := range spend {
		used := "-"
		if cs.Limit.Cents > 0 {
			used = fmt.Sprintf("%.0f%%", cs.DisplayPercent())
		}
		fmt.Printf("%-15s %12s %12s %8s\n", cs.Category, cs.Spent, cs.Limit, used)
	}
	return nil
}

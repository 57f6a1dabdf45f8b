package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Spending insights for a month, most critical first",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	svc, _, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	year, month, err := monthArgs()
	if err != nil {
		return err
	}

	insights, err := svc.Insights(cmd.Context(), year, month)
	if err != nil {
		return err
	}

	for _, in := range insights {
		fmt.Println(in)
	}
	return nil
}

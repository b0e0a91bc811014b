package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the accounting summary next to the totals of the loaded ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		if board.Ledger == nil {
			return fmt.Errorf("role %s may not view accounting", board.Role)
		}

		board.Ledger.Refresh(ctx)

		s, errMsg := board.Ledger.Summary()
		if errMsg != "" {
			return errors.New(errMsg)
		}

		totals := board.Ledger.Totals()

		if jsonOutput {
			return printJSON(map[string]any{"summary": s, "ledger": totals})
		}

		fmt.Printf("%-16s %14s %14s\n", "", "BACKEND", "LEDGER")
		fmt.Printf("%-16s %14s %14s\n", "Revenue", s.TotalRevenue.Format(), totals.Income.Format())
		fmt.Printf("%-16s %14s %14s\n", "Expenses", s.TotalExpenses.Format(), totals.Expenses.Format())
		fmt.Printf("%-16s %14s %14s\n", "Net profit", s.NetProfit.Format(), totals.Net.Format())
		fmt.Printf("%d transaction(s)\n", totals.Count)

		return nil
	},
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved plan snapshots",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of plans to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	return withStore(func(s *store.Store) error {
		plans, err := s.ListPlans(flagHistoryLimit)
		if err != nil {
			return err
		}
		if len(plans) == 0 {
			fmt.Println("\n  No saved plans. Save one with `debtpath simulate --save`.")
			return nil
		}

		rows := make([][]string, 0, len(plans))
		for _, p := range plans {
			months := cli.FormatMonths(p.Months)
			if p.Incomplete {
				months = "> " + months
			}
			rows = append(rows, []string{
				humanize.Time(p.CreatedAt),
				p.Label,
				p.Strategy,
				cli.FormatMoney(p.MonthlyBudget),
				months,
				cli.FormatMoney(p.TotalInterest),
				strings.Join(p.PayoffOrder, " → "),
			})
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Saved Plans",
			Headers: []string{"Saved", "Label", "Strategy", "Budget", "Debt-Free In", "Interest", "Payoff Order"},
			Rows:    rows,
		}))
		return nil
	})
}

package cmd

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare snowball and avalanche for the same budget",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	in, err := loadPlanInputs()
	if err != nil {
		return err
	}
	if len(in.debts) == 0 {
		printNoDebts()
		return nil
	}

	cmp, err := payoff.Compare(in.debts, in.budget, in.months)
	if err != nil {
		printBudgetHint(err)
		return err
	}
	names := debtNames(in.debts)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SNOWBALL vs AVALANCHE", cli.FormatMoney(in.budget)+"/mo"))
	fmt.Println()

	row := func(res model.SimulationResult) []string {
		months := cli.FormatMonths(res.MonthsToPayoff)
		if res.Incomplete {
			months = "> " + cli.FormatMonths(in.months)
		}
		first := "-"
		if len(res.Order) > 0 {
			first = names[res.Order[0]]
		}
		mark := ""
		if res.Strategy.Kind == cmp.Recommended {
			mark = "★"
		}
		return []string{
			string(res.Strategy.Kind) + " " + mark,
			months,
			cli.FormatMoney(res.TotalInterestPaid),
			cli.FormatMoney(res.TotalPaid),
			first,
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Strategy", "Debt-Free In", "Interest", "Total Paid", "First Target"},
		Rows:    [][]string{row(cmp.Snowball), row(cmp.Avalanche)},
		Footer: []string{
			"avalanche Δ",
			fmt.Sprintf("%+dm", -cmp.MonthsSaved),
			cli.FormatDelta(cmp.Avalanche.TotalInterestPaid, cmp.Snowball.TotalInterestPaid),
			cli.FormatDelta(cmp.Avalanche.TotalPaid, cmp.Snowball.TotalPaid),
			"",
		},
	}))
	fmt.Println()

	if cmp.InterestSaved.IsPositive() {
		fmt.Printf("  Avalanche saves %s in interest", cli.FormatMoney(cmp.InterestSaved))
	} else {
		fmt.Print("  Both strategies pay the same interest")
	}
	switch {
	case cmp.MonthsSaved > 0:
		fmt.Printf(" and finishes %s sooner.\n", cli.FormatMonths(cmp.MonthsSaved))
	case cmp.MonthsSaved < 0:
		fmt.Printf("; snowball finishes %s sooner.\n", cli.FormatMonths(-cmp.MonthsSaved))
	default:
		fmt.Println(".")
	}
	fmt.Printf("  Recommended: %s\n", cmp.Recommended)

	if cmp.Snowball.Incomplete || cmp.Avalanche.Incomplete {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf("At this budget some debts outlast %s.", cli.FormatMonths(in.months))))
	}
	return nil
}

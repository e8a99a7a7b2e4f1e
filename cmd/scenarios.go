package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/scenario"

	"github.com/spf13/cobra"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Compare budget scenarios side by side",
	Long: "Run every [[scenarios]] entry from the config file (or the built-in\n" +
		"minimum, recommended, and aggressive scenarios) against the same debts.",
	RunE: runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(_ *cobra.Command, _ []string) error {
	in, err := loadPlanInputs()
	if err != nil {
		return err
	}
	if len(in.debts) == 0 {
		printNoDebts()
		return nil
	}

	defs, err := config.ScenarioDefinitions(in.cfg)
	if err != nil {
		return err
	}
	if flagMonths > 0 {
		for i := range defs {
			defs[i].MaxMonths = flagMonths
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pres, err := scenario.Present(ctx, in.debts, defs, in.strategy)
	if err != nil {
		printBudgetHint(err)
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIOS", in.strategy.String()))
	fmt.Println()

	views := pres.Ordered(defs)
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		months := cli.FormatNumber(int64(v.Result.MonthsToPayoff))
		years := fmt.Sprintf("%d", v.YearsToPayoff)
		if v.Result.Incomplete {
			months = "> " + months
			years = "-"
		}
		rows = append(rows, []string{
			v.Label,
			cli.FormatMoney(v.MonthlyPayment),
			months,
			years,
			cli.FormatMoney(v.Result.TotalInterestPaid),
			cli.FormatMoney(v.Result.TotalPaid),
			cli.FormatPayoffDate(v.Result.MonthsToPayoff),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Scenario", "Monthly", "Months", "Years", "Interest", "Total Paid", "Debt-Free By"},
		Rows:    rows,
	}))

	bars := make([]cli.Bar, len(views))
	for i, v := range views {
		bars[i] = cli.Bar{
			Label: v.Label,
			Value: float64(v.Result.MonthsToPayoff),
			Note:  cli.FormatMonths(v.Result.MonthsToPayoff),
		}
	}
	fmt.Println()
	fmt.Print(cli.RenderBars(bars, 40))

	fmt.Printf("\n  Minimum payments: %s/mo\n", cli.FormatMoney(payoff.MinimumBudget(in.debts)))
	for _, v := range views {
		if v.Result.Incomplete {
			fmt.Println(cli.RenderWarning(fmt.Sprintf("%q does not pay everything off within its horizon.", v.Label)))
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagSchedule  bool
	flagDebtID    string
	flagSave      bool
	flagSaveLabel string
)

var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Aliases: []string{"plan"},
	Short:   "Simulate paying off every debt with one monthly budget",
	RunE:    runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagSchedule, "schedule", false, "Print the month-by-month schedule")
	simulateCmd.Flags().StringVar(&flagDebtID, "debt", "", "Limit --schedule to one debt id")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Save a snapshot of the plan to the store")
	simulateCmd.Flags().StringVar(&flagSaveLabel, "label", "", "Label for the saved plan (default: strategy name)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(_ *cobra.Command, _ []string) error {
	in, err := loadPlanInputs()
	if err != nil {
		return err
	}
	if len(in.debts) == 0 {
		printNoDebts()
		return nil
	}

	res, err := payoff.Simulate(in.debts, in.strategy, in.budget, in.months)
	if err != nil {
		printBudgetHint(err)
		return err
	}

	names := debtNames(in.debts)

	fmt.Println()
	fmt.Println(cli.RenderTitle("DEBT PAYOFF PLAN", in.strategy.String(), cli.FormatMoney(in.budget)+"/mo"))
	fmt.Println()

	debtFree := cli.FormatMonths(res.MonthsToPayoff)
	debtFreeBy := cli.FormatPayoffDate(res.MonthsToPayoff)
	if res.Incomplete {
		debtFree = "more than " + cli.FormatMonths(in.months)
		debtFreeBy = "-"
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Debts", cli.FormatNumber(int64(len(res.Order)))},
			{"Total Balance", cli.FormatMoney(totalBalance(in.debts))},
			{"---"},
			{"Monthly Budget", cli.FormatMoney(in.budget)},
			{"Minimum Payments", cli.FormatMoney(payoff.MinimumBudget(in.debts))},
			{"Extra Each Month", cli.FormatMoney(in.budget.Sub(payoff.MinimumBudget(in.debts)))},
			{"---"},
			{"Debt-Free In", debtFree},
			{"Debt-Free By", debtFreeBy},
			{"Total Interest", cli.FormatMoney(res.TotalInterestPaid)},
			{"Total Paid", cli.FormatMoney(res.TotalPaid)},
		},
	}))
	fmt.Println()

	fmt.Print(renderPayoffOrder(in.debts, res, names))

	if series := res.BalanceSeries(); len(series) > 0 {
		fmt.Println()
		fmt.Printf("  Balance  %s  %s → $0\n",
			cli.RenderSparkline(series, 60),
			cli.FormatMoneyShort(totalBalance(in.debts)))
	}

	printResultWarnings(res, names, in.months)

	if flagSchedule {
		if err := printSchedules(res, names); err != nil {
			return err
		}
	}

	if flagSave {
		if err := savePlan(in, res); err != nil {
			return err
		}
	}

	return nil
}

func renderPayoffOrder(debts []model.Debt, res model.SimulationResult, names map[string]string) string {
	byID := make(map[string]model.Debt, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
	}

	rows := make([][]string, 0, len(res.Order))
	for i, id := range res.Order {
		d := byID[id]
		interest := decimal.Zero
		for _, row := range res.Schedules[id] {
			interest = interest.Add(row.InterestAccrued)
		}
		paidOff := "not paid off"
		if p := res.PayoffPeriod(id); p > 0 {
			paidOff = fmt.Sprintf("%s (month %d)", cli.FormatPayoffDate(p), p)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			names[id],
			cli.FormatMoney(d.Balance),
			cli.FormatRate(d.APR),
			cli.FormatMoney(d.MinimumPayment),
			cli.FormatMoney(interest),
			paidOff,
		})
	}

	return cli.RenderTable(cli.Table{
		Title:   "Payoff Order",
		Headers: []string{"#", "Debt", "Balance", "APR", "Minimum", "Interest", "Paid Off"},
		Rows:    rows,
	})
}

func printResultWarnings(res model.SimulationResult, names map[string]string, months int) {
	if !res.Incomplete && len(res.Unamortizable) == 0 {
		return
	}
	fmt.Println()
	if res.Incomplete {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Not every debt is paid off within %s.", cli.FormatMonths(months))))
	}
	if len(res.Unamortizable) > 0 {
		labels := make([]string, len(res.Unamortizable))
		for i, id := range res.Unamortizable {
			labels[i] = names[id]
		}
		fmt.Println(cli.RenderWarning("Payments no longer cover interest on: " + strings.Join(labels, ", ")))
	}
}

func printSchedules(res model.SimulationResult, names map[string]string) error {
	ids := res.Order
	if flagDebtID != "" {
		if _, ok := names[flagDebtID]; !ok {
			return fmt.Errorf("no debt with id %q", flagDebtID)
		}
		ids = []string{flagDebtID}
	}
	for _, id := range ids {
		fmt.Println()
		fmt.Print(renderSchedule(names[id], res.Schedules[id]))
	}
	return nil
}

func renderSchedule(title string, rows []model.PaymentPlan) string {
	if len(rows) == 0 {
		return fmt.Sprintf("  %s: nothing owed\n", title)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			fmt.Sprintf("%d", r.Period),
			cli.FormatPayoffDate(r.Period),
			cli.FormatMoney(r.OpeningBalance),
			cli.FormatMoney(r.InterestAccrued),
			cli.FormatMoney(r.Payment),
			cli.FormatMoney(r.PrincipalPaid),
			cli.FormatMoney(r.ClosingBalance),
		}
	}
	return cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Month", "Date", "Opening", "Interest", "Payment", "Principal", "Closing"},
		Rows:    out,
	})
}

func savePlan(in planInputs, res model.SimulationResult) error {
	label := flagSaveLabel
	if label == "" {
		label = in.strategy.String()
	}

	s, err := openStore(in.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	p, err := s.SavePlan(label, res)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\n  Saved plan %q (%s)\n", p.Label, p.ID)
	}
	return nil
}

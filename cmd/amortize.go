package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagAmBalance     string
	flagAmAPR         string
	flagAmPayment     string
	flagAmTarget      int
	flagAmDebt        string
	flagAmSummaryOnly bool
)

var amortizeCmd = &cobra.Command{
	Use:   "amortize",
	Short: "Amortization schedule for a single debt",
	Long: "Print the month-by-month schedule for one balance at a fixed payment.\n" +
		"Give --balance, --apr and --payment directly, or --debt to use a stored debt.\n" +
		"--target computes the level payment that clears the balance in that many months.",
	RunE: runAmortize,
}

func init() {
	amortizeCmd.Flags().StringVar(&flagAmBalance, "balance", "", "Principal balance")
	amortizeCmd.Flags().StringVar(&flagAmAPR, "apr", "", "Annual rate in percent (e.g. 24.99)")
	amortizeCmd.Flags().StringVar(&flagAmPayment, "payment", "", "Monthly payment")
	amortizeCmd.Flags().IntVar(&flagAmTarget, "target", 0, "Solve for the payment that pays off in N months")
	amortizeCmd.Flags().StringVar(&flagAmDebt, "debt", "", "Use a debt from the store or --debts file by id")
	amortizeCmd.Flags().BoolVar(&flagAmSummaryOnly, "summary", false, "Print only the summary, not every month")
	rootCmd.AddCommand(amortizeCmd)
}

// amortizeInputs resolves principal, APR and payment from flags or a debt.
func amortizeInputs() (model.Debt, decimal.Decimal, error) {
	var d model.Debt
	if flagAmDebt != "" {
		debts, _, err := loadDebts(loadConfig())
		if err != nil {
			return d, decimal.Zero, err
		}
		found := false
		for _, candidate := range debts {
			if candidate.ID == flagAmDebt {
				d, found = candidate, true
				break
			}
		}
		if !found {
			return d, decimal.Zero, fmt.Errorf("no debt with id %q", flagAmDebt)
		}
	} else {
		if flagAmBalance == "" || flagAmAPR == "" {
			return d, decimal.Zero, errors.New("give --balance and --apr, or --debt")
		}
		bal, err := parseMoney(flagAmBalance)
		if err != nil {
			return d, decimal.Zero, fmt.Errorf("--balance: %w", err)
		}
		apr, err := decimal.NewFromString(flagAmAPR)
		if err != nil || apr.IsNegative() {
			return d, decimal.Zero, fmt.Errorf("--apr: invalid rate %q", flagAmAPR)
		}
		d = model.Debt{ID: "loan", Name: "Loan", Balance: bal, APR: apr}
	}

	switch {
	case flagAmTarget > 0:
		return d, payoff.RequiredPayment(d.Balance, d.APR, flagAmTarget), nil
	case flagAmPayment != "":
		p, err := parseMoney(flagAmPayment)
		if err != nil {
			return d, decimal.Zero, fmt.Errorf("--payment: %w", err)
		}
		return d, p, nil
	case d.MinimumPayment.IsPositive():
		return d, d.MinimumPayment, nil
	}
	return d, decimal.Zero, errors.New("give --payment or --target")
}

func runAmortize(_ *cobra.Command, _ []string) error {
	d, payment, err := amortizeInputs()
	if err != nil {
		return err
	}
	months := resolveMonths(loadConfig())

	rows := payoff.Amortize(d.Balance, d.APR, payment, months)

	interest, paid := decimal.Zero, decimal.Zero
	for _, r := range rows {
		interest = interest.Add(r.InterestAccrued)
		paid = paid.Add(r.Payment)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("AMORTIZATION", d.Label()))
	fmt.Println()

	payoffIn := cli.FormatMonths(len(rows))
	if !payoff.Amortizes(rows) {
		payoffIn = "not within " + cli.FormatMonths(months)
	}
	fmt.Print(cli.RenderKeyValues([][2]string{
		{"Balance", cli.FormatMoney(d.Balance)},
		{"APR", cli.FormatRate(d.APR)},
		{"Payment", cli.FormatMoney(payment) + "/mo"},
		{"First month interest", cli.FormatMoney(payoff.FirstPeriodInterest(d.Balance, d.APR))},
		{"Paid off in", payoffIn},
		{"Total interest", cli.FormatMoney(interest)},
		{"Total paid", cli.FormatMoney(paid)},
		{"Interest share", cli.RenderShareBar(interest, paid, 20)},
	}))

	if d.Balance.IsPositive() && !payoff.Amortizes(rows) {
		fmt.Println()
		fmt.Println(cli.RenderWarning(fmt.Sprintf(
			"This payment does not clear the balance in time. At least %s is needed to finish within %s.",
			cli.FormatMoney(payoff.RequiredPayment(d.Balance, d.APR, months)), cli.FormatMonths(months))))
	}

	if !flagAmSummaryOnly && len(rows) > 0 {
		fmt.Println()
		fmt.Print(renderSchedule(d.Label(), rows))
	}
	return nil
}

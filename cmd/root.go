// Package cmd implements the debtpath CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/scenario"
	"github.com/theirongolddev/debtpath/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDebts    string
	flagBudget   string
	flagStrategy string
	flagMonths   int
	flagDB       string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:          "debtpath",
	Short:        "Debt payoff planner",
	Long:         "Plan your way out of debt: snowball and avalanche schedules, scenarios, and comparisons.",
	RunE:         runSimulate,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDebts, "debts", "f", "", "TOML debts file (default: the debt store)")
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Monthly budget for all debts")
	rootCmd.PersistentFlags().StringVarP(&flagStrategy, "strategy", "s", "", "snowball, avalanche, or custom:id1,id2")
	rootCmd.PersistentFlags().IntVarP(&flagMonths, "months", "m", 0, "Horizon in months (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Store DSN (overrides config and DEBTPATH_DB)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig returns the config file or defaults, warning on a bad file.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// openStore opens the debt store named by --db or the config.
func openStore(cfg config.Config) (*store.Store, error) {
	dsn := flagDB
	if dsn == "" {
		dsn = config.GetStoreDSN(cfg)
	}
	driver := cfg.Store.Driver
	if flagDB != "" {
		driver = ""
	}
	s, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening debt store: %w", err)
	}
	return s, nil
}

// loadDebts is the shared debt loading path used by all planning commands.
// A --debts file wins; otherwise debts come from the store. The second
// return value names the source for display.
func loadDebts(cfg config.Config) ([]model.Debt, string, error) {
	if flagDebts != "" {
		debts, err := config.LoadDebts(flagDebts)
		if err != nil {
			return nil, "", err
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Loaded %d debts from %s\n", len(debts), flagDebts)
		}
		return debts, flagDebts, nil
	}

	s, err := openStore(cfg)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = s.Close() }()

	debts, err := s.ListDebts()
	if err != nil {
		return nil, "", fmt.Errorf("listing debts: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loaded %d debts from the %s store\n", len(debts), s.Driver())
	}
	return debts, s.Driver() + " store", nil
}

func resolveStrategy(cfg config.Config) (model.Strategy, error) {
	if flagStrategy != "" {
		s, err := model.ParseStrategy(flagStrategy)
		if err != nil {
			return model.Strategy{}, fmt.Errorf("--strategy: %w", err)
		}
		return s, nil
	}
	s, err := config.GetStrategy(cfg)
	if err != nil {
		return model.Strategy{}, fmt.Errorf("config strategy: %w", err)
	}
	return s, nil
}

func resolveMonths(cfg config.Config) int {
	switch {
	case flagMonths > 0:
		return flagMonths
	case cfg.General.MaxMonths > 0:
		return cfg.General.MaxMonths
	}
	return scenario.DefaultMaxMonths
}

// parseMoney accepts amounts like "850", "$1,250.50".
func parseMoney(raw string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(raw), "$"), ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q is negative", raw)
	}
	return d.Round(2), nil
}

// resolveBudget picks the monthly budget: --budget, then the config, then
// the minimum payments plus 50%.
func resolveBudget(cfg config.Config, debts []model.Debt, s model.Strategy) (decimal.Decimal, error) {
	if flagBudget != "" {
		b, err := parseMoney(flagBudget)
		if err != nil {
			return decimal.Zero, fmt.Errorf("--budget: %w", err)
		}
		return b, nil
	}
	if cfg.General.MonthlyBudget != nil {
		return cfg.General.MonthlyBudget.Round(2), nil
	}
	b, err := scenario.Budget(debts, model.BudgetRule{
		Kind:    model.BudgetMinimumPlusPercent,
		Percent: decimal.NewFromInt(50),
	}, s)
	if err != nil {
		return decimal.Zero, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  No budget given, using minimums + 50%% (%s)\n", cli.FormatMoney(b))
	}
	return b, nil
}

// planInputs bundles everything a planning command needs.
type planInputs struct {
	cfg      config.Config
	debts    []model.Debt
	source   string
	strategy model.Strategy
	budget   decimal.Decimal
	months   int
}

func loadPlanInputs() (planInputs, error) {
	cfg := loadConfig()
	debts, source, err := loadDebts(cfg)
	if err != nil {
		return planInputs{}, err
	}
	s, err := resolveStrategy(cfg)
	if err != nil {
		return planInputs{}, err
	}
	in := planInputs{cfg: cfg, debts: debts, source: source, strategy: s, months: resolveMonths(cfg)}
	if len(debts) == 0 {
		return in, nil
	}
	in.budget, err = resolveBudget(cfg, debts, s)
	if err != nil {
		return planInputs{}, err
	}
	return in, nil
}

func printNoDebts() {
	fmt.Println("\n  No debts found.")
	fmt.Println("  Add one with `debtpath debts add` or pass a file with --debts.")
}

func debtNames(debts []model.Debt) map[string]string {
	names := make(map[string]string, len(debts))
	for _, d := range debts {
		names[d.ID] = d.Label()
	}
	return names
}

func totalBalance(debts []model.Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range debts {
		sum = sum.Add(d.Balance)
	}
	return sum
}

// printBudgetHint explains an insufficient budget in terms of the minimums.
func printBudgetHint(err error) {
	var be *payoff.BudgetError
	if errors.As(err, &be) {
		fmt.Fprintf(os.Stderr, "  Minimum payments total %s; raise --budget to at least that.\n",
			cli.FormatMoney(be.Required))
	}
}

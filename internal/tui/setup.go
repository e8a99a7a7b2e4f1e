package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/store"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// SetupValues holds the answers collected by the setup wizard as text,
// the way the form edits them.
type SetupValues struct {
	Strategy  string
	Budget    string
	MaxMonths string
	Driver    string
	DSN       string
	Theme     string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	v := SetupValues{
		Strategy:  cfg.General.Strategy,
		MaxMonths: strconv.Itoa(cfg.General.MaxMonths),
		Driver:    cfg.Store.Driver,
		DSN:       cfg.Store.DSN,
		Theme:     cfg.Appearance.Theme,
	}
	if cfg.General.MonthlyBudget != nil {
		v.Budget = cfg.General.MonthlyBudget.StringFixed(2)
	}
	if v.Strategy != string(model.Snowball) {
		v.Strategy = string(model.Avalanche)
	}
	if v.Driver == "" {
		v.Driver = store.DriverSQLite
	}
	return v
}

// NewSetupForm builds the first-run wizard writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, th := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(th.Name, th.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to debtpath").
				Description("Plan your way out of debt.\nLet's set up a few defaults."),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Payoff strategy").
				Description("Which debt gets your extra money first").
				Options(
					huh.NewOption("Avalanche · highest APR first (least interest)", string(model.Avalanche)),
					huh.NewOption("Snowball · smallest balance first (quick wins)", string(model.Snowball)),
				).
				Value(&vals.Strategy),
			huh.NewInput().
				Title("Monthly budget").
				Description("Total you can put toward debts each month. Leave blank to decide per run.").
				Placeholder("e.g. 850").
				Value(&vals.Budget).
				Validate(validateBudget),
			huh.NewInput().
				Title("Planning horizon (months)").
				Value(&vals.MaxMonths).
				Validate(validateMonths),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where to keep your debts").
				Options(
					huh.NewOption("Local SQLite file", store.DriverSQLite),
					huh.NewOption("PostgreSQL", store.DriverPostgres),
				).
				Value(&vals.Driver),
			huh.NewInput().
				Title("Database DSN").
				Description("Blank uses the default SQLite file in your data directory.").
				Value(&vals.DSN),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(false)
}

func validateBudget(s string) error {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return errors.New("enter an amount like 850 or 850.50")
	}
	if d.IsNegative() {
		return errors.New("budget cannot be negative")
	}
	return nil
}

func validateMonths(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a whole number of months")
	}
	return nil
}

// Apply writes the answers onto cfg.
func (v SetupValues) Apply(cfg config.Config) (config.Config, error) {
	if err := validateBudget(v.Budget); err != nil {
		return cfg, fmt.Errorf("budget: %w", err)
	}
	if err := validateMonths(v.MaxMonths); err != nil {
		return cfg, fmt.Errorf("max months: %w", err)
	}
	if v.Driver != store.DriverSQLite && v.Driver != store.DriverPostgres {
		return cfg, fmt.Errorf("unsupported store driver %q", v.Driver)
	}
	if v.Driver == store.DriverPostgres && strings.TrimSpace(v.DSN) == "" {
		return cfg, errors.New("postgres needs a DSN")
	}

	if _, err := model.ParseStrategy(v.Strategy); err != nil {
		return cfg, err
	}
	cfg.General.Strategy = v.Strategy
	cfg.General.MaxMonths, _ = strconv.Atoi(strings.TrimSpace(v.MaxMonths))

	cfg.General.MonthlyBudget = nil
	if raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v.Budget), "$")); raw != "" {
		d, _ := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		d = d.Round(2)
		cfg.General.MonthlyBudget = &d
	}

	cfg.Store.Driver = v.Driver
	cfg.Store.DSN = strings.TrimSpace(v.DSN)

	if theme.Known(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg, nil
}

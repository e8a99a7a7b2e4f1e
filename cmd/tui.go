package cmd

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/tui"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive payoff dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background fills render even when the profile
	// detection falls back to Ascii.
	lipgloss.SetColorProfile(termenv.TrueColor)

	strategy, err := resolveStrategy(cfg)
	if err != nil {
		return err
	}
	defs, err := config.ScenarioDefinitions(cfg)
	if err != nil {
		return err
	}

	budget := decimal.Zero
	switch {
	case flagBudget != "":
		if budget, err = parseMoney(flagBudget); err != nil {
			return fmt.Errorf("--budget: %w", err)
		}
	case cfg.General.MonthlyBudget != nil:
		budget = cfg.General.MonthlyBudget.Round(2)
	}

	// stderr belongs to the alt screen once the program starts
	flagQuiet = true
	app := tui.NewApp(tui.Options{
		Load: func() ([]model.Debt, string, error) {
			return loadDebts(cfg)
		},
		Strategy:  strategy,
		Budget:    budget,
		MaxMonths: resolveMonths(cfg),
		Scenarios: defs,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

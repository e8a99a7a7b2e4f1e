package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/tui/components"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderScenariosTab(cw int) string {
	t := theme.Active
	if a.scenErr != nil {
		return components.ContentCard("Scenarios", errorLine(a.scenErr), cw)
	}

	colStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Shortfall).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	labelW := 12
	for _, v := range a.scenarios {
		labelW = max(labelW, len(v.Label))
	}
	cols := fmt.Sprintf("%%-%ds  %%12s  %%10s  %%6s  %%12s  %%12s  %%s", labelW)

	var b strings.Builder
	b.WriteString(colStyle.Render(fmt.Sprintf(cols, "Scenario", "Monthly", "Months", "Years", "Interest", "Total Paid", "")))
	b.WriteString("\n")

	maxMonths := 0
	for _, v := range a.scenarios {
		maxMonths = max(maxMonths, v.Result.MonthsToPayoff)
	}

	for _, v := range a.scenarios {
		status := ""
		style := rowStyle
		if v.Result.Incomplete {
			status = "not paid off"
			style = warnStyle
		}
		b.WriteString(style.Render(fmt.Sprintf(cols,
			v.Label,
			cli.FormatMoney(v.MonthlyPayment),
			cli.FormatNumber(int64(v.Result.MonthsToPayoff)),
			fmt.Sprint(v.YearsToPayoff),
			cli.FormatMoney(v.Result.TotalInterestPaid),
			cli.FormatMoney(v.Result.TotalPaid),
			status,
		)))
		b.WriteString("\n")
	}

	// Time-to-payoff bars, scaled to the slowest scenario.
	b.WriteString("\n")
	barW := max(10, components.CardInnerWidth(cw)-labelW-30)
	for _, v := range a.scenarios {
		pct := 0.0
		if maxMonths > 0 {
			pct = float64(v.Result.MonthsToPayoff) / float64(maxMonths)
		}
		b.WriteString(components.PayoffBar(v.Label, pct, t.Balance, cli.FormatMonths(v.Result.MonthsToPayoff), labelW, barW))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render("Scenarios come from [[scenarios]] in the config file; " +
		"the defaults are minimum, +50%, and +100%."))

	return components.ContentCard(fmt.Sprintf("Scenarios (%s)", a.strategy.String()), b.String(), cw)
}

package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/tui/components"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	if a.simErr != nil {
		return components.ContentCard("Compare", errorLine(a.simErr), cw)
	}
	cmp := a.comparison

	widths := components.LayoutRow(cw, 2)
	cards := []string{
		a.strategyCard("Snowball · smallest balance first", cmp.Snowball, cmp.Avalanche, model.Avalanche, cmp.Recommended == model.Snowball, widths[0]),
		a.strategyCard("Avalanche · highest APR first", cmp.Avalanche, cmp.Snowball, model.Snowball, cmp.Recommended == model.Avalanche, widths[1]),
	}

	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var summary strings.Builder
	summary.WriteString(muted.Render("Recommended: "))
	summary.WriteString(accent.Render(string(cmp.Recommended)))
	summary.WriteString("\n")
	if cmp.InterestSaved.IsPositive() {
		summary.WriteString(muted.Render(fmt.Sprintf("Avalanche saves %s in interest", cli.FormatMoney(cmp.InterestSaved))))
	} else {
		summary.WriteString(muted.Render("Both strategies pay the same interest"))
	}
	switch {
	case cmp.MonthsSaved > 0:
		summary.WriteString(muted.Render(fmt.Sprintf(" and finishes %s sooner.", cli.FormatMonths(cmp.MonthsSaved))))
	case cmp.MonthsSaved < 0:
		summary.WriteString(muted.Render(fmt.Sprintf(" but snowball finishes %s sooner.", cli.FormatMonths(-cmp.MonthsSaved))))
	default:
		summary.WriteString(muted.Render("."))
	}

	return components.CardRow(cards) + "\n" + components.ContentCard("Summary", summary.String(), cw)
}

// strategyCard shows one strategy's result. rival is the other strategy's
// result, for the interest difference.
func (a App) strategyCard(title string, res, rival model.SimulationResult, other model.StrategyKind, recommended bool, width int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	star := lipgloss.NewStyle().Foreground(t.Highlight).Background(t.Surface).Bold(true)
	interest := lipgloss.NewStyle().Foreground(t.Interest).Background(t.Surface).Bold(true)

	months := cli.FormatMonths(res.MonthsToPayoff)
	if res.Incomplete {
		months = "> " + cli.FormatMonths(a.maxMonths)
	}

	var b strings.Builder
	if recommended {
		b.WriteString(star.Render("★ recommended"))
		b.WriteString("\n")
	}
	for _, kv := range []struct {
		label, value string
		style        lipgloss.Style
	}{
		{"Debt-free in", months, value},
		{"Total interest", cli.FormatMoney(res.TotalInterestPaid), interest},
		{"vs " + string(other), cli.FormatDelta(res.TotalInterestPaid, rival.TotalInterestPaid), label},
		{"Total paid", cli.FormatMoney(res.TotalPaid), value},
	} {
		b.WriteString(label.Render(fmt.Sprintf("%-15s", kv.label)))
		b.WriteString(kv.style.Render(kv.value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(label.Render("Order"))
	inner := components.CardInnerWidth(width)
	for i, id := range res.Order {
		b.WriteString("\n")
		line := fmt.Sprintf("%d. %s", i+1, a.debtLabel(id))
		if p := res.PayoffPeriod(id); p > 0 {
			line += "  m" + fmt.Sprint(p)
		}
		b.WriteString(value.Render(truncStr(line, inner)))
	}

	return components.ContentCard(title, b.String(), width)
}

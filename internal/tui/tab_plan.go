package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/debtpath/internal/cli"
	"github.com/theirongolddev/debtpath/internal/payoff"
	"github.com/theirongolddev/debtpath/internal/tui/components"
	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderPlanTab(cw int) string {
	t := theme.Active
	if a.simErr != nil {
		return components.ContentCard("Plan", errorLine(a.simErr), cw)
	}
	res := a.result

	total := decimal.Zero
	for _, d := range a.debts {
		total = total.Add(d.Balance)
	}

	debtFree := cli.FormatMonths(res.MonthsToPayoff)
	debtFreeNote := cli.FormatPayoffDate(res.MonthsToPayoff)
	if res.Incomplete {
		debtFree = "> " + cli.FormatMonths(a.maxMonths)
		debtFreeNote = "not paid off"
	}

	interestShare := ""
	if res.TotalPaid.IsPositive() {
		interestShare = cli.FormatPercent(res.TotalInterestPaid.Div(res.TotalPaid).InexactFloat64()) + " of payments"
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Total Debt", Value: cli.FormatMoney(total), Delta: fmt.Sprintf("%d debts", len(res.Order))},
		{Label: "Monthly Budget", Value: cli.FormatMoney(a.budget), Delta: "min " + cli.FormatMoney(payoff.MinimumBudget(a.debts))},
		{Label: "Debt-Free In", Value: debtFree, Delta: debtFreeNote},
		{Label: "Total Interest", Value: cli.FormatMoney(res.TotalInterestPaid), Delta: interestShare},
	}, cw))
	b.WriteString("\n")

	series := res.BalanceSeries()
	values := make([]float64, len(series))
	labels := make([]string, len(series))
	for i, v := range series {
		values[i] = v.InexactFloat64()
		labels[i] = fmt.Sprintf("m%d", i+1)
	}
	chartW := components.CardInnerWidth(cw)
	b.WriteString(components.ContentCard("Remaining Balance",
		components.BarChart(values, labels, t.Balance, chartW, 8), cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Payoff Order ("+a.strategy.String()+")", a.payoffOrderBody(chartW), cw))

	if len(res.Unamortizable) > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Shortfall).Background(t.Surface)
		names := make([]string, len(res.Unamortizable))
		for i, id := range res.Unamortizable {
			names[i] = a.debtLabel(id)
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Warning",
			warn.Render("Payments no longer cover interest on: "+strings.Join(names, ", ")), cw))
	}

	return b.String()
}

// payoffOrderBody renders one bar per debt showing how far into the plan
// it is cleared.
func (a App) payoffOrderBody(width int) string {
	res := a.result
	labelW := 16
	barW := max(10, width-labelW-26)

	var rows []string
	for i, id := range res.Order {
		label := fmt.Sprintf("%d. %s", i+1, truncStr(a.debtLabel(id), labelW-3))
		period := res.PayoffPeriod(id)
		if period == 0 || res.MonthsToPayoff == 0 {
			rows = append(rows, components.PayoffBar(label, 1, theme.Active.Shortfall, "not paid off", labelW, barW))
			continue
		}
		pct := float64(period) / float64(res.MonthsToPayoff)
		note := fmt.Sprintf("%s (%s)", cli.FormatPayoffDate(period), cli.FormatMonths(period))
		rows = append(rows, components.PayoffBar(label, pct, theme.Active.PaidOff, note, labelW, barW))
	}
	return strings.Join(rows, "\n")
}

func (a App) debtLabel(id string) string {
	if d, ok := a.debtByID(id); ok {
		return d.Label()
	}
	return id
}

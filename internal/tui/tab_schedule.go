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

// scheduleOverhead is the number of lines around the schedule rows: tab bar,
// status bar, card border and title, debt header, and column header.
const scheduleOverhead = 9

func (a App) scheduleVisibleRows() int {
	return max(1, a.height-scheduleOverhead)
}

func (a App) selectedSchedule() (model.Debt, []model.PaymentPlan) {
	ids := a.scheduleIDs()
	if len(ids) == 0 || a.schedDebt >= len(ids) {
		return model.Debt{}, nil
	}
	d, _ := a.debtByID(ids[a.schedDebt])
	return d, a.result.Schedules[d.ID]
}

func (a App) maxScroll() int {
	_, rows := a.selectedSchedule()
	return max(0, len(rows)-a.scheduleVisibleRows())
}

func (a *App) scroll(delta int) {
	a.schedScroll = max(0, min(a.schedScroll+delta, a.maxScroll()))
}

func (a App) renderScheduleTab(cw int) string {
	t := theme.Active
	if a.simErr != nil {
		return components.ContentCard("Schedule", errorLine(a.simErr), cw)
	}

	d, rows := a.selectedSchedule()
	ids := a.scheduleIDs()

	headerStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	colStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	paidStyle := lipgloss.NewStyle().Foreground(t.PaidOff).Background(t.Surface).Bold(true)
	interestStyle := lipgloss.NewStyle().Foreground(t.Interest).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	b.WriteString(headerStyle.Render(d.Label()))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s @ %s, min %s   [%d/%d]  [ ] switch debt",
		cli.FormatMoney(d.Balance), cli.FormatRate(d.APR), cli.FormatMoney(d.MinimumPayment),
		a.schedDebt+1, len(ids))))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("Nothing owed on this debt."))
		return components.ContentCard("Schedule", b.String(), cw)
	}

	// Repaid fraction as of the last visible row.
	visible := a.scheduleVisibleRows()
	start := min(a.schedScroll, max(0, len(rows)-1))
	end := min(start+visible, len(rows))

	repaid := 0.0
	if d.Balance.IsPositive() {
		repaid = 1 - rows[end-1].ClosingBalance.Div(d.Balance).InexactFloat64()
	}
	barW := max(10, innerW-40)
	b.WriteString(components.PayoffBar(fmt.Sprintf("Month %d", rows[end-1].Period), repaid,
		components.ColorForPaid(repaid), fmt.Sprintf("repaid by %s", cli.FormatPayoffDate(rows[end-1].Period)),
		10, barW))
	b.WriteString("\n")

	head, interestCol, tail := "%6s  %-8s  %12s  ", "%10s", "  %12s  %12s  %12s"
	b.WriteString(colStyle.Render(fmt.Sprintf(head+interestCol+tail,
		"Month", "Date", "Opening", "Interest", "Payment", "Principal", "Closing")))
	b.WriteString("\n")

	payoffPeriod := a.result.PayoffPeriod(d.ID)
	for _, r := range rows[start:end] {
		left := fmt.Sprintf(head, fmt.Sprint(r.Period), cli.FormatPayoffDate(r.Period), cli.FormatMoney(r.OpeningBalance))
		mid := fmt.Sprintf(interestCol, cli.FormatMoney(r.InterestAccrued))
		right := fmt.Sprintf(tail, cli.FormatMoney(r.Payment), cli.FormatMoney(r.PrincipalPaid), cli.FormatMoney(r.ClosingBalance))
		if r.Period == payoffPeriod {
			b.WriteString(paidStyle.Render(left + mid + right))
		} else {
			b.WriteString(rowStyle.Render(left) + interestStyle.Render(mid) + rowStyle.Render(right))
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("rows %d-%d of %d  j/k scroll  g/G top/bottom", start+1, end, len(rows))))

	return components.ContentCard("Schedule", b.String(), cw)
}

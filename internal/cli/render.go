package cli

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var nowFunc = time.Now

// Flexoki Dark. The CLI does not follow the TUI theme setting.
var (
	colorBorder = lipgloss.Color("#282726")
	colorDim    = lipgloss.Color("#575653")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	footerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	moneyStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	owedStyle   = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const titleMinWidth = 55

// RenderTitle renders a boxed heading: the title in bold followed by any
// details, muted and joined with " · ".
func RenderTitle(title string, details ...string) string {
	text := titleStyle.Render(title)
	if len(details) > 0 {
		text += "  " + mutedStyle.Render(strings.Join(details, " · "))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(max(titleMinWidth, lipgloss.Width(text)+2)).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// Table is a bordered text table. A row holding only "---" draws a rule.
// Columns whose cells all read as quantities (money, rates, counts,
// durations) are right-aligned. Footer, when set, is drawn bold under a rule.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  []string
}

// RenderTable renders t with rounded borders.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 {
		for _, row := range t.Rows {
			if !isRule(row) {
				cols = max(cols, len(row))
			}
		}
	}
	if cols == 0 {
		return ""
	}
	l := newLayout(t, cols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(l.rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(l.line(t.Headers, func(string) lipgloss.Style { return headerStyle }))
		b.WriteString(l.rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isRule(row) {
			b.WriteString(l.rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(l.line(row, cellStyle))
	}
	if len(t.Footer) > 0 {
		b.WriteString(l.rule("├", "┼", "┤"))
		b.WriteString(l.line(t.Footer, func(string) lipgloss.Style { return footerStyle }))
	}
	b.WriteString(l.rule("╰", "┴", "╯"))
	return b.String()
}

type layout struct {
	widths []int
	right  []bool
}

func newLayout(t Table, cols int) layout {
	l := layout{widths: make([]int, cols), right: make([]bool, cols)}
	measure := func(cells []string) {
		for i, c := range cells {
			if i < cols {
				l.widths[i] = max(l.widths[i], lipgloss.Width(c))
			}
		}
	}
	measure(t.Headers)
	measure(t.Footer)

	amounts, words := make([]int, cols), make([]int, cols)
	for _, row := range t.Rows {
		if isRule(row) {
			continue
		}
		measure(row)
		for i, c := range row {
			switch {
			case i >= cols || isBlank(c):
			case isAmount(c):
				amounts[i]++
			default:
				words[i]++
			}
		}
	}
	for i := range l.right {
		l.right[i] = amounts[i] > 0 && words[i] == 0
	}
	return l
}

func (l layout) rule(left, mid, right string) string {
	segs := make([]string, len(l.widths))
	for i, w := range l.widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func (l layout) line(cells []string, style func(string) lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("│"))
	for i, w := range l.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(style(cell).Render(" " + pad(cell, w, l.right[i]) + " "))
		b.WriteString(dimStyle.Render("│"))
	}
	b.WriteString("\n")
	return b.String()
}

// pad fills s to w display cells, so "→" and "★" count as one column.
func pad(s string, w int, right bool) string {
	gap := strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	if right {
		return gap + s
	}
	return s + gap
}

func isRule(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func isBlank(cell string) bool {
	c := strings.TrimSpace(cell)
	return c == "" || c == "-"
}

// isAmount reports whether a cell reads as a quantity: "$1,200.50",
// "-$30.00", "24.99%", "3y 4m", "> 600".
func isAmount(cell string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(cell), "> ")
	s = strings.TrimLeft(s, "+-")
	r, _ := utf8.DecodeRuneInString(s)
	return r == '$' || unicode.IsDigit(r)
}

func cellStyle(cell string) lipgloss.Style {
	c := strings.TrimSpace(cell)
	switch {
	case strings.HasPrefix(c, "-$"):
		return owedStyle
	case strings.HasPrefix(c, "$"), strings.HasPrefix(c, "+$"):
		return moneyStyle
	}
	return valueStyle
}

// RenderShareBar shows part as a share of total, e.g. the interest portion
// of everything paid.
func RenderShareBar(part, total decimal.Decimal, width int) string {
	if !total.IsPositive() || width <= 0 {
		return ""
	}
	share := decimal.Min(decimal.Max(part.Div(total), decimal.Zero), decimal.NewFromInt(1))
	filled := int(share.Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %s  %s of %s",
		warnStyle.Render(bar),
		FormatPercent(share.InexactFloat64()),
		FormatMoneyShort(part),
		FormatMoneyShort(total),
	)
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline draws a series as block characters scaled from zero to the
// series maximum. Series longer than width are bucketed and each bucket shows
// its largest value, so a brief peak is never averaged away.
func RenderSparkline(series []decimal.Decimal, width int) string {
	if len(series) == 0 || width <= 0 {
		return ""
	}
	n := min(len(series), width)
	buckets := make([]decimal.Decimal, n)
	for i := range buckets {
		lo, hi := i*len(series)/n, (i+1)*len(series)/n
		buckets[i] = series[lo]
		for _, v := range series[lo+1 : hi] {
			buckets[i] = decimal.Max(buckets[i], v)
		}
	}

	top := decimal.Max(buckets[0], buckets[1:]...)
	if !top.IsPositive() {
		return strings.Repeat(string(sparkBlocks[0]), n)
	}
	steps := decimal.NewFromInt(int64(len(sparkBlocks) - 1))

	var b strings.Builder
	for _, v := range buckets {
		idx := int(decimal.Max(v, decimal.Zero).Mul(steps).Div(top).IntPart())
		b.WriteRune(sparkBlocks[min(idx, len(sparkBlocks)-1)])
	}
	return b.String()
}

// Bar is one row of RenderBars.
type Bar struct {
	Label string
	Value float64
	Note  string
}

// RenderBars draws horizontal bars scaled to the largest value. Labels are
// padded to a common width and each bar is followed by its note.
func RenderBars(bars []Bar, width int) string {
	labelW, top := 0, 0.0
	for _, bar := range bars {
		labelW = max(labelW, lipgloss.Width(bar.Label))
		top = max(top, bar.Value)
	}

	var b strings.Builder
	for _, bar := range bars {
		n := 0
		if top > 0 && bar.Value > 0 {
			n = max(1, int(bar.Value/top*float64(width)+0.5))
		}
		b.WriteString("  " + pad(bar.Label, labelW, false) + " ")
		b.WriteString(moneyStyle.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", width-n+1))
		b.WriteString(mutedStyle.Render(bar.Note))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderWarning renders a highlighted warning line.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render("! "+msg)
}

// RenderKeyValues renders label/value pairs as aligned lines.
func RenderKeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(pad(p[0], width, false)))
		b.WriteString("  ")
		b.WriteString(valueStyle.Render(p[1]))
		b.WriteString("\n")
	}
	return b.String()
}

package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/debtpath/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Downsample picks at most n evenly spaced points from values, always
// keeping the first and last. labels, when the same length, are picked alongside.
func Downsample(values []float64, labels []string, n int) ([]float64, []string) {
	if n < 2 || len(values) <= n {
		return values, labels
	}
	outV := make([]float64, n)
	var outL []string
	if len(labels) == len(values) {
		outL = make([]string, n)
	}
	for i := range outV {
		src := i * (len(values) - 1) / (n - 1)
		outV[i] = values[src]
		if outL != nil {
			outL[i] = labels[src]
		}
	}
	return outV, outL
}

// BarChart renders a vertical bar chart with a money-labeled Y axis.
// It falls back to a sparkline when the area is too small.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	for int(math.Ceil(maxVal/tickStep)) > max(2, height/2) {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	intervals := max(1, int(math.Round(ceiling/tickStep)))
	rowsPerTick := max(2, height/intervals)
	chartH := rowsPerTick * intervals

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	chartW := max(5, width-yLabelW-1)

	// Each bar is at least two cells plus a one-cell gap.
	values, labels = Downsample(values, labels, max(2, (chartW+1)/3))
	n := len(values)
	gap := 1
	barW := chartW
	if n > 1 {
		barW = (chartW - (n - 1)) / n
	} else {
		gap = 0
	}
	barW = max(2, min(barW, 6))
	axisLen := n*barW + max(0, n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		barColor := color
		if float64(row)/float64(chartH) <= 0.5 {
			barColor = t.Accent
		}
		barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(tickStep * float64(row/rowsPerTick))
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, label)))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = max(1, min(idx, 8))
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", yLabelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n && n > 0 {
		buf := []byte(strings.Repeat(" ", axisLen))
		lastEnd := -1
		step := max(1, (n*8)/(axisLen+1))
		for i := 0; i < n; i += step {
			pos := i * (barW + gap)
			lbl := labels[i]
			if pos <= lastEnd || pos+len(lbl) > axisLen {
				continue
			}
			copy(buf[pos:], lbl)
			lastEnd = pos + len(lbl)
		}
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a round tick interval targeting about five ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel renders an axis value as compact dollars ("$12k").
func formatChartLabel(v float64) string {
	trim := func(x float64, suffix string) string {
		if x == math.Trunc(x) {
			return fmt.Sprintf("$%.0f%s", x, suffix)
		}
		return fmt.Sprintf("$%.1f%s", x, suffix)
	}
	switch {
	case v >= 1e6:
		return trim(v/1e6, "M")
	case v >= 1e3:
		return trim(v/1e3, "k")
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats a currency amount with separators and cents.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	fixed := d.Round(2).StringFixed(2)
	return "$" + humanize.Comma(d.Round(2).IntPart()) + fixed[len(fixed)-3:]
}

// FormatMoneyShort drops cents for large amounts.
// e.g., 48210.77 -> "$48,211", 95.4 -> "$95.40"
func FormatMoneyShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return "$" + humanize.Comma(d.Round(0).IntPart())
	}
	return FormatMoney(d)
}

// FormatRate formats an APR percentage.
func FormatRate(apr decimal.Decimal) string {
	return apr.Round(2).StringFixed(2) + "%"
}

// FormatMonths formats a month count as years and months.
// e.g., 40 -> "3y 4m", 12 -> "1y", 7 -> "7m"
func FormatMonths(months int) string {
	if months <= 0 {
		return "0m"
	}
	years, rest := months/12, months%12
	switch {
	case years == 0:
		return fmt.Sprintf("%dm", rest)
	case rest == 0:
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, rest)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats the change from previous to current with a sign.
func FormatDelta(current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return "-" + FormatMoney(delta.Neg())
	}
	return "+" + FormatMoney(delta)
}

// FormatPayoffDate returns the month name a payoff lands on, counting
// months forward from the current month.
func FormatPayoffDate(months int) string {
	return nowFunc().AddDate(0, months, 0).Format("Jan 2006")
}

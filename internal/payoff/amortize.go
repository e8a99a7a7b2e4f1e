// Package payoff implements the debt payoff engine: single-debt amortization,
// strategy ordering, and the multi-debt roll-forward simulation.
//
// All amounts are decimals. Interest is rounded to cents every period, so every
// schedule is exact to the cent and closing balances reach exactly zero.
package payoff

import (
	"math"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	cent    = decimal.New(1, -2)
)

// MonthlyRate converts an APR percentage to a periodic monthly rate.
func MonthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(hundred).Div(twelve)
}

// FirstPeriodInterest is the interest one period accrues on balance at apr.
// A payment at or below this amount does not reduce the balance.
func FirstPeriodInterest(balance, apr decimal.Decimal) decimal.Decimal {
	return balance.Mul(MonthlyRate(apr)).Round(2)
}

// Step applies one period of interest and payment to an opening balance.
// The applied payment never exceeds what is owed, the closing balance is never
// negative, and principal is never negative (unpaid interest capitalizes).
func Step(period int, opening, monthlyRate, payment decimal.Decimal) model.PaymentPlan {
	interest := opening.Mul(monthlyRate).Round(2)
	due := opening.Add(interest)

	applied := decimal.Min(payment, due)
	if applied.IsNegative() {
		applied = decimal.Zero
	}
	principal := applied.Sub(interest)
	if principal.IsNegative() {
		principal = decimal.Zero
	}

	return model.PaymentPlan{
		Period:          period,
		OpeningBalance:  opening,
		InterestAccrued: interest,
		PrincipalPaid:   principal,
		Payment:         applied,
		ClosingBalance:  due.Sub(applied),
	}
}

// Amortize projects a single balance paid down by a level monthly payment.
// It stops as soon as the balance reaches zero and never runs past maxPeriods,
// even when the payment cannot keep up with interest.
func Amortize(principal, annualRate, monthlyPayment decimal.Decimal, maxPeriods int) []model.PaymentPlan {
	if maxPeriods < 0 {
		maxPeriods = 0
	}
	rate := MonthlyRate(annualRate)
	schedule := make([]model.PaymentPlan, 0, min(maxPeriods, 64))

	balance := principal
	for period := 1; period <= maxPeriods && balance.IsPositive(); period++ {
		row := Step(period, balance, rate, monthlyPayment)
		schedule = append(schedule, row)
		balance = row.ClosingBalance
	}
	return schedule
}

// Amortizes reports whether a schedule ends with the balance paid off.
// An empty schedule amortizes only trivially (nothing was owed).
func Amortizes(schedule []model.PaymentPlan) bool {
	if len(schedule) == 0 {
		return true
	}
	return schedule[len(schedule)-1].ClosingBalance.IsZero()
}

// RequiredPayment returns the smallest cents-level payment that pays principal
// off at apr within months periods, starting from the level annuity payment.
func RequiredPayment(principal, apr decimal.Decimal, months int) decimal.Decimal {
	if !principal.IsPositive() {
		return decimal.Zero
	}
	if months <= 0 {
		months = 1
	}

	n := decimal.NewFromInt(int64(months))
	var payment decimal.Decimal
	if !apr.IsPositive() {
		payment = principal.Div(n).RoundCeil(2)
	} else {
		r := MonthlyRate(apr).InexactFloat64()
		p := principal.InexactFloat64()
		level := p * r / (1 - math.Pow(1+r, -float64(months)))
		payment = decimal.NewFromFloat(level).RoundCeil(2)
	}

	// Per-period rounding can leave a few cents after the last period.
	for i := 0; i < 10_000; i++ {
		if sched := Amortize(principal, apr, payment, months); Amortizes(sched) {
			break
		}
		payment = payment.Add(cent)
	}
	return payment
}

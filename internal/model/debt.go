// Package model defines domain types for debts, payment schedules, and payoff plans.
package model

import "github.com/shopspring/decimal"

// Debt kinds recognized by the CLI and debts files. Kind is descriptive only;
// the engine never branches on it.
const (
	KindCreditCard  = "credit_card"
	KindStudentLoan = "student_loan"
	KindAuto        = "auto"
	KindMedical     = "medical"
	KindPersonal    = "personal"
	KindOther       = "other"
)

// Kinds lists every debt kind in display order.
var Kinds = []string{KindCreditCard, KindStudentLoan, KindAuto, KindMedical, KindPersonal, KindOther}

// Debt is a single liability. Balance and MinimumPayment are currency amounts,
// APR is a percentage (24.99 means 24.99% a year).
type Debt struct {
	ID             string
	Name           string
	Kind           string
	Balance        decimal.Decimal
	APR            decimal.Decimal
	MinimumPayment decimal.Decimal
}

// Settled reports whether the debt has nothing left to pay.
func (d Debt) Settled() bool {
	return !d.Balance.IsPositive()
}

// Label returns the name when set, otherwise the ID.
func (d Debt) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// PaymentPlan is one period of one debt's schedule.
type PaymentPlan struct {
	Period          int
	OpeningBalance  decimal.Decimal
	InterestAccrued decimal.Decimal
	PrincipalPaid   decimal.Decimal
	Payment         decimal.Decimal
	ClosingBalance  decimal.Decimal
}

package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetRuleKind names how a scenario derives its monthly budget.
type BudgetRuleKind string

const (
	BudgetFixed              BudgetRuleKind = "fixed"
	BudgetMinimum            BudgetRuleKind = "minimum"
	BudgetMinimumPlusPercent BudgetRuleKind = "minimum_plus_percent"
	BudgetMinimumPlus        BudgetRuleKind = "minimum_plus"
	BudgetTargetMonths       BudgetRuleKind = "target_months"
)

// BudgetRule describes a monthly budget relative to the debts it applies to.
type BudgetRule struct {
	Kind    BudgetRuleKind
	Amount  decimal.Decimal // fixed amount, or extra over the minimum
	Percent decimal.Decimal // extra over the minimum, in percent
	Months  int             // payoff target for BudgetTargetMonths
}

// String describes the rule, e.g. "minimum + 50%".
func (r BudgetRule) String() string {
	switch r.Kind {
	case BudgetFixed:
		return "$" + r.Amount.StringFixed(2) + "/mo"
	case BudgetMinimum:
		return "minimum"
	case BudgetMinimumPlusPercent:
		return "minimum + " + r.Percent.String() + "%"
	case BudgetMinimumPlus:
		return "minimum + $" + r.Amount.StringFixed(2)
	case BudgetTargetMonths:
		return fmt.Sprintf("paid off in %d months", r.Months)
	}
	return string(r.Kind)
}

// ScenarioDef is a named budget and horizon to simulate.
type ScenarioDef struct {
	Label     string
	Budget    BudgetRule
	MaxMonths int
	Strategy  *Strategy // nil uses the caller's strategy
}

// ScenarioView is a SimulationResult decorated for display.
type ScenarioView struct {
	Label          string
	MonthlyPayment decimal.Decimal
	YearsToPayoff  int
	Result         SimulationResult
}

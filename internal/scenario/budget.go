package scenario

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Budget derives the monthly budget a rule yields for the given debts.
func Budget(debts []model.Debt, rule model.BudgetRule, s model.Strategy) (decimal.Decimal, error) {
	minimum := payoff.MinimumBudget(debts)

	switch rule.Kind {
	case model.BudgetFixed:
		return rule.Amount, nil
	case model.BudgetMinimum:
		return minimum, nil
	case model.BudgetMinimumPlusPercent:
		factor := decimal.NewFromInt(1).Add(rule.Percent.Div(hundred))
		return minimum.Mul(factor).Round(2), nil
	case model.BudgetMinimumPlus:
		return minimum.Add(rule.Amount), nil
	case model.BudgetTargetMonths:
		if rule.Months <= 0 {
			return decimal.Zero, fmt.Errorf("%w: target_months needs months > 0", ErrInvalidScenario)
		}
		outstanding := outstandingDebts(debts)
		if len(outstanding) == 1 {
			d := outstanding[0]
			return decimal.Max(payoff.RequiredPayment(d.Balance, d.APR, rule.Months), d.MinimumPayment), nil
		}
		return payoff.BudgetForMonths(debts, s, rule.Months)
	}
	return decimal.Zero, fmt.Errorf("%w: unknown budget rule %q", ErrInvalidScenario, rule.Kind)
}

func outstandingDebts(debts []model.Debt) []model.Debt {
	var out []model.Debt
	for _, d := range debts {
		if !d.Settled() {
			out = append(out, d)
		}
	}
	return out
}

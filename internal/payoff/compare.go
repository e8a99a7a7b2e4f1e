package payoff

import (
	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/shopspring/decimal"
)

// Compare simulates the same debts and budget under snowball and avalanche.
func Compare(debts []model.Debt, monthlyBudget decimal.Decimal, maxPeriods int) (model.Comparison, error) {
	snow, err := Simulate(debts, model.Strategy{Kind: model.Snowball}, monthlyBudget, maxPeriods)
	if err != nil {
		return model.Comparison{}, err
	}
	aval, err := Simulate(debts, model.Strategy{Kind: model.Avalanche}, monthlyBudget, maxPeriods)
	if err != nil {
		return model.Comparison{}, err
	}

	return model.Comparison{
		Snowball:      snow,
		Avalanche:     aval,
		InterestSaved: decimal.Max(decimal.Zero, snow.TotalInterestPaid.Sub(aval.TotalInterestPaid)),
		MonthsSaved:   snow.MonthsToPayoff - aval.MonthsToPayoff,
		Recommended:   recommend(snow, aval),
	}, nil
}

// recommend prefers a plan that finishes, then less interest, then fewer
// months. Snowball wins exact ties since early payoffs are the quicker win.
func recommend(snow, aval model.SimulationResult) model.StrategyKind {
	if snow.Incomplete != aval.Incomplete {
		if aval.Incomplete {
			return model.Snowball
		}
		return model.Avalanche
	}
	switch aval.TotalInterestPaid.Cmp(snow.TotalInterestPaid) {
	case -1:
		return model.Avalanche
	case 1:
		return model.Snowball
	}
	if aval.MonthsToPayoff < snow.MonthsToPayoff {
		return model.Avalanche
	}
	return model.Snowball
}

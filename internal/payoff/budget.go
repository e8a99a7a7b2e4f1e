package payoff

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/shopspring/decimal"
)

// BudgetForMonths finds the smallest cents-level monthly budget that settles
// every debt within months periods under strategy s.
//
// Because a target's unused surplus is not moved to other debts within the same
// period, some targets cannot be met at any budget (for example several debts in
// a single month); those return ErrTargetUnreachable.
func BudgetForMonths(debts []model.Debt, s model.Strategy, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, fmt.Errorf("%w: target must be at least one month", ErrTargetUnreachable)
	}

	lo := MinimumBudget(debts)
	meets := func(budget decimal.Decimal) (bool, error) {
		res, err := Simulate(debts, s, budget, months)
		if err != nil {
			return false, err
		}
		return !res.Incomplete, nil
	}

	ok, err := meets(lo)
	if err != nil {
		return decimal.Zero, err
	}
	if ok {
		return lo, nil
	}

	// Enough to clear every balance plus a period of interest on top of the
	// minimums; anything a target cannot absorb is unused.
	hi := lo
	for _, d := range debts {
		if !d.Settled() {
			hi = hi.Add(d.Balance).Add(FirstPeriodInterest(d.Balance, d.APR))
		}
	}
	if ok, err = meets(hi); err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: cannot settle all debts within %d months", ErrTargetUnreachable, months)
	}

	// Search in whole cents: lo fails, hi meets the target.
	loC, hiC := lo.Shift(2).Floor().IntPart(), hi.Shift(2).Ceil().IntPart()
	for hiC-loC > 1 {
		mid := loC + (hiC-loC)/2
		ok, err := meets(decimal.New(mid, -2))
		if err != nil {
			return decimal.Zero, err
		}
		if ok {
			hiC = mid
		} else {
			loC = mid
		}
	}
	return decimal.New(hiC, -2), nil
}

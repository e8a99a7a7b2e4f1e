package payoff

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/shopspring/decimal"
)

// Validate rejects debts the simulator cannot accept: negative amounts,
// missing ids, and duplicate ids.
func Validate(debts []model.Debt) error {
	seen := make(map[string]struct{}, len(debts))
	for _, d := range debts {
		switch {
		case d.ID == "":
			return &DebtError{ID: d.Name, Reason: "missing id"}
		case d.Balance.IsNegative():
			return &DebtError{ID: d.ID, Reason: "negative balance"}
		case d.APR.IsNegative():
			return &DebtError{ID: d.ID, Reason: "negative interest rate"}
		case d.MinimumPayment.IsNegative():
			return &DebtError{ID: d.ID, Reason: "negative minimum payment"}
		}
		if _, dup := seen[d.ID]; dup {
			return &DebtError{ID: d.ID, Reason: "duplicate id"}
		}
		seen[d.ID] = struct{}{}
	}
	return nil
}

func validateStrategy(s model.Strategy) error {
	switch s.Kind {
	case model.Snowball, model.Avalanche, model.Custom:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStrategy, s.Kind)
}

// MinimumBudget is the sum of minimum payments across outstanding debts.
func MinimumBudget(debts []model.Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if !d.Settled() {
			total = total.Add(d.MinimumPayment)
		}
	}
	return total
}

// Simulate drives all debts through time under a fixed monthly budget.
//
// Each period every outstanding debt is scheduled its minimum payment, and the
// current target (first outstanding debt in the strategy order) also receives
// whatever budget the minimums leave free. When a debt settles, its minimum is
// freed from the next period on and the next debt in order becomes the target.
// The order is decided once, before the first period.
//
// Structural problems (invalid debts, unknown strategy, budget below the
// minimums) are returned as errors. Running out of periods is not an error: the
// result is flagged Incomplete.
func Simulate(debts []model.Debt, s model.Strategy, monthlyBudget decimal.Decimal, maxPeriods int) (model.SimulationResult, error) {
	if err := Validate(debts); err != nil {
		return model.SimulationResult{}, err
	}
	if err := validateStrategy(s); err != nil {
		return model.SimulationResult{}, err
	}
	if required := MinimumBudget(debts); monthlyBudget.LessThan(required) {
		return model.SimulationResult{}, &BudgetError{Budget: monthlyBudget, Required: required}
	}

	order := Order(debts, s)

	byID := make(map[string]model.Debt, len(debts))
	schedules := make(map[string][]model.PaymentPlan, len(debts))
	for _, d := range debts {
		byID[d.ID] = d
		schedules[d.ID] = []model.PaymentPlan{}
	}

	balances := make(map[string]decimal.Decimal, len(order))
	rates := make(map[string]decimal.Decimal, len(order))
	for _, id := range order {
		balances[id] = byID[id].Balance
		rates[id] = MonthlyRate(byID[id].APR)
	}

	result := model.SimulationResult{
		Strategy:      model.Strategy{Kind: s.Kind, Order: append([]string(nil), s.Order...)},
		MonthlyBudget: monthlyBudget,
		Order:         order,
		Schedules:     schedules,
	}

	outstanding := append([]string(nil), order...)
	for period := 1; period <= maxPeriods && len(outstanding) > 0; period++ {
		free := monthlyBudget
		for _, id := range outstanding {
			free = free.Sub(byID[id].MinimumPayment)
		}

		remaining := make([]string, 0, len(outstanding))
		for i, id := range outstanding {
			payment := byID[id].MinimumPayment
			if i == 0 {
				payment = payment.Add(free)
			}

			row := Step(period, balances[id], rates[id], payment)
			schedules[id] = append(schedules[id], row)
			balances[id] = row.ClosingBalance

			if row.ClosingBalance.IsZero() {
				result.Payoffs = append(result.Payoffs, model.Payoff{DebtID: id, Period: period})
				continue
			}
			remaining = append(remaining, id)
		}
		outstanding = remaining
	}

	result.Incomplete = len(outstanding) > 0
	for _, id := range outstanding {
		rows := schedules[id]
		if len(rows) > 0 && rows[len(rows)-1].PrincipalPaid.IsZero() {
			result.Unamortizable = append(result.Unamortizable, id)
		}
	}

	result.TotalInterestPaid, result.TotalPaid, result.MonthsToPayoff = totals(schedules)
	return result, nil
}

// totals sums interest and payments across schedules and takes the longest
// schedule as the payoff length.
func totals(schedules map[string][]model.PaymentPlan) (interest, paid decimal.Decimal, months int) {
	interest, paid = decimal.Zero, decimal.Zero
	for _, rows := range schedules {
		for _, row := range rows {
			interest = interest.Add(row.InterestAccrued)
			paid = paid.Add(row.Payment)
		}
		if len(rows) > months {
			months = len(rows)
		}
	}
	return interest, paid, months
}

// SingleDebtResult wraps an Amortize schedule in a SimulationResult so one-debt
// callers get the same summary shape as Simulate.
func SingleDebtResult(d model.Debt, s model.Strategy, payment decimal.Decimal, maxPeriods int) model.SimulationResult {
	schedule := Amortize(d.Balance, d.APR, payment, maxPeriods)
	result := model.SimulationResult{
		Strategy:      model.Strategy{Kind: s.Kind, Order: append([]string(nil), s.Order...)},
		MonthlyBudget: payment,
		Schedules:     map[string][]model.PaymentPlan{d.ID: schedule},
	}
	if !d.Settled() {
		result.Order = []string{d.ID}
	}

	switch {
	case len(schedule) == 0:
	case Amortizes(schedule):
		result.Payoffs = []model.Payoff{{DebtID: d.ID, Period: len(schedule)}}
	default:
		result.Incomplete = true
		if schedule[len(schedule)-1].PrincipalPaid.IsZero() {
			result.Unamortizable = []string{d.ID}
		}
	}
	if len(schedule) == 0 && !d.Settled() {
		result.Incomplete = true
	}

	result.TotalInterestPaid, result.TotalPaid, result.MonthsToPayoff = totals(result.Schedules)
	return result
}

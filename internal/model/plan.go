package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StrategyKind names a payoff ordering rule.
type StrategyKind string

const (
	Snowball  StrategyKind = "snowball"  // smallest balance first
	Avalanche StrategyKind = "avalanche" // highest APR first
	Custom    StrategyKind = "custom"    // caller-supplied order
)

// Strategy selects the order in which debts receive the free budget.
// Order is only consulted for Custom.
type Strategy struct {
	Kind  StrategyKind
	Order []string
}

// CustomOrder returns a Custom strategy targeting ids in the given order.
func CustomOrder(ids ...string) Strategy {
	return Strategy{Kind: Custom, Order: append([]string(nil), ids...)}
}

// String renders the strategy in the form accepted by ParseStrategy.
func (s Strategy) String() string {
	if s.Kind == Custom {
		return string(Custom) + ":" + strings.Join(s.Order, ",")
	}
	return string(s.Kind)
}

// ParseStrategy parses "snowball", "avalanche", or "custom:id1,id2".
func ParseStrategy(raw string) (Strategy, error) {
	raw = strings.TrimSpace(raw)
	name, rest, hasOrder := strings.Cut(raw, ":")
	switch StrategyKind(strings.ToLower(name)) {
	case Snowball:
		if hasOrder {
			break
		}
		return Strategy{Kind: Snowball}, nil
	case Avalanche:
		if hasOrder {
			break
		}
		return Strategy{Kind: Avalanche}, nil
	case Custom:
		var ids []string
		for _, id := range strings.Split(rest, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return Strategy{}, fmt.Errorf("custom strategy needs at least one debt id")
		}
		return CustomOrder(ids...), nil
	}
	return Strategy{}, fmt.Errorf("unknown strategy %q (want snowball, avalanche, or custom:id,...)", raw)
}

// Payoff records the period in which a debt was settled.
type Payoff struct {
	DebtID string
	Period int
}

// SimulationResult is the outcome of one payoff simulation. It is built once
// and must be treated as read-only by callers.
type SimulationResult struct {
	Strategy      Strategy
	MonthlyBudget decimal.Decimal

	// Order is the target order fixed at simulation start.
	Order     []string
	Schedules map[string][]PaymentPlan
	Payoffs   []Payoff

	// Unamortizable lists debts whose payments stopped covering interest
	// by the time the horizon ran out.
	Unamortizable []string

	MonthsToPayoff    int
	TotalInterestPaid decimal.Decimal
	TotalPaid         decimal.Decimal

	// Incomplete is set when the horizon was reached with debts outstanding.
	Incomplete bool
}

// PayoffPeriod returns the period in which id was settled, or 0.
func (r SimulationResult) PayoffPeriod(id string) int {
	for _, p := range r.Payoffs {
		if p.DebtID == id {
			return p.Period
		}
	}
	return 0
}

// BalanceSeries returns the total closing balance across all debts for each
// period, index 0 being period 1. Debts settled earlier contribute zero.
func (r SimulationResult) BalanceSeries() []decimal.Decimal {
	series := make([]decimal.Decimal, r.MonthsToPayoff)
	for i := range series {
		series[i] = decimal.Zero
	}
	for _, rows := range r.Schedules {
		for _, row := range rows {
			if row.Period < 1 || row.Period > len(series) {
				continue
			}
			series[row.Period-1] = series[row.Period-1].Add(row.ClosingBalance)
		}
	}
	return series
}

// Comparison holds snowball and avalanche results for the same inputs.
type Comparison struct {
	Snowball      SimulationResult
	Avalanche     SimulationResult
	InterestSaved decimal.Decimal // snowball interest minus avalanche interest, floored at 0
	MonthsSaved   int             // snowball months minus avalanche months
	Recommended   StrategyKind
}

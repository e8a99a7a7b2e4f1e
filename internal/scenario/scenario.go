// Package scenario runs a set of named budget scenarios against the same debts
// and decorates each result for side-by-side display.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/shopspring/decimal"
)

// DefaultMaxMonths caps every scenario that does not set its own horizon.
const DefaultMaxMonths = 600

var ErrInvalidScenario = errors.New("invalid scenario")

// Presentation maps scenario labels to their views.
type Presentation map[string]model.ScenarioView

// Ordered returns the views in definition order, skipping labels not present.
func (p Presentation) Ordered(defs []model.ScenarioDef) []model.ScenarioView {
	out := make([]model.ScenarioView, 0, len(defs))
	for _, def := range defs {
		if v, ok := p[def.Label]; ok {
			out = append(out, v)
		}
	}
	return out
}

// DefaultDefinitions returns the minimum, recommended, and aggressive scenarios.
func DefaultDefinitions() []model.ScenarioDef {
	return []model.ScenarioDef{
		{
			Label:     "minimum",
			Budget:    model.BudgetRule{Kind: model.BudgetMinimum},
			MaxMonths: DefaultMaxMonths,
		},
		{
			Label:     "recommended",
			Budget:    model.BudgetRule{Kind: model.BudgetMinimumPlusPercent, Percent: decimal.NewFromInt(50)},
			MaxMonths: DefaultMaxMonths,
		},
		{
			Label:     "aggressive",
			Budget:    model.BudgetRule{Kind: model.BudgetMinimumPlusPercent, Percent: decimal.NewFromInt(100)},
			MaxMonths: DefaultMaxMonths,
		},
	}
}

// YearsToPayoff rounds a month count up to whole years.
func YearsToPayoff(months int) int {
	if months <= 0 {
		return 0
	}
	return (months + 11) / 12
}

// Validate checks that every definition has a unique, non-empty label.
func Validate(defs []model.ScenarioDef) error {
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if def.Label == "" {
			return fmt.Errorf("%w: definition %d has no label", ErrInvalidScenario, i)
		}
		if _, dup := seen[def.Label]; dup {
			return fmt.Errorf("%w: duplicate label %q", ErrInvalidScenario, def.Label)
		}
		seen[def.Label] = struct{}{}
	}
	return nil
}

type outcome struct {
	view model.ScenarioView
	err  error
}

// Present runs every definition against debts using a bounded worker pool.
// Results are keyed by label. The first failing definition (in definition
// order) aborts the presentation.
func Present(ctx context.Context, debts []model.Debt, defs []model.ScenarioDef, s model.Strategy) (Presentation, error) {
	if err := Validate(defs); err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return Presentation{}, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(defs) {
		numWorkers = len(defs)
	}

	work := make(chan int, len(defs))
	results := make([]outcome, len(defs))
	var wg sync.WaitGroup

	for i := range defs {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				if err := ctx.Err(); err != nil {
					results[idx].err = err
					continue
				}
				view, err := Run(debts, defs[idx], s)
				results[idx] = outcome{view: view, err: err}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := make(Presentation, len(defs))
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("scenario %q: %w", defs[i].Label, r.err)
		}
		p[defs[i].Label] = r.view
	}
	return p, nil
}

// Run evaluates a single definition. A lone outstanding debt goes through the
// amortization path, anything else through the full simulator.
func Run(debts []model.Debt, def model.ScenarioDef, s model.Strategy) (model.ScenarioView, error) {
	if def.Strategy != nil {
		s = *def.Strategy
	}
	maxMonths := def.MaxMonths
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}

	if err := payoff.Validate(debts); err != nil {
		return model.ScenarioView{}, err
	}

	budget, err := Budget(debts, def.Budget, s)
	if err != nil {
		return model.ScenarioView{}, err
	}

	var result model.SimulationResult
	if outstanding := outstandingDebts(debts); len(outstanding) == 1 {
		switch s.Kind {
		case model.Snowball, model.Avalanche, model.Custom:
		default:
			return model.ScenarioView{}, fmt.Errorf("%w: %q", payoff.ErrInvalidStrategy, s.Kind)
		}
		if required := outstanding[0].MinimumPayment; budget.LessThan(required) {
			return model.ScenarioView{}, &payoff.BudgetError{Budget: budget, Required: required}
		}
		result = payoff.SingleDebtResult(outstanding[0], s, budget, maxMonths)
		// Settled inputs get an empty schedule, as Simulate gives them.
		for _, d := range debts {
			if _, ok := result.Schedules[d.ID]; !ok {
				result.Schedules[d.ID] = []model.PaymentPlan{}
			}
		}
	} else {
		result, err = payoff.Simulate(debts, s, budget, maxMonths)
		if err != nil {
			return model.ScenarioView{}, err
		}
	}

	return model.ScenarioView{
		Label:          def.Label,
		MonthlyPayment: budget,
		YearsToPayoff:  YearsToPayoff(result.MonthsToPayoff),
		Result:         result,
	}, nil
}

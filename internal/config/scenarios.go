package config

import (
	"fmt"

	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/scenario"

	"github.com/shopspring/decimal"
)

// ScenarioConfig is one [[scenarios]] table. The API accepts the same
// shape as JSON.
//
//	[[scenarios]]
//	label = "stretch"
//	budget = "minimum_plus"
//	amount = "250"
type ScenarioConfig struct {
	Label     string           `toml:"label" json:"label"`
	Budget    string           `toml:"budget" json:"budget"`
	Amount    *decimal.Decimal `toml:"amount,omitempty" json:"amount,omitempty"`
	Percent   *decimal.Decimal `toml:"percent,omitempty" json:"percent,omitempty"`
	Months    int              `toml:"months,omitempty" json:"months,omitempty"`
	MaxMonths int              `toml:"max_months,omitempty" json:"max_months,omitempty"`
	Strategy  string           `toml:"strategy,omitempty" json:"strategy,omitempty"`
}

// Definition converts the table into a scenario definition.
func (s ScenarioConfig) Definition() (model.ScenarioDef, error) {
	def := model.ScenarioDef{
		Label:     s.Label,
		MaxMonths: s.MaxMonths,
		Budget: model.BudgetRule{
			Kind:   model.BudgetRuleKind(s.Budget),
			Months: s.Months,
		},
	}
	if s.Amount != nil {
		def.Budget.Amount = s.Amount.Round(2)
	}
	if s.Percent != nil {
		def.Budget.Percent = *s.Percent
	}

	switch def.Budget.Kind {
	case model.BudgetFixed, model.BudgetMinimumPlus:
		if s.Amount == nil {
			return def, fmt.Errorf("scenario %q: budget %q needs amount", s.Label, s.Budget)
		}
	case model.BudgetMinimumPlusPercent:
		if s.Percent == nil {
			return def, fmt.Errorf("scenario %q: budget %q needs percent", s.Label, s.Budget)
		}
	case model.BudgetTargetMonths:
		if s.Months <= 0 {
			return def, fmt.Errorf("scenario %q: budget %q needs months", s.Label, s.Budget)
		}
	case model.BudgetMinimum:
	default:
		return def, fmt.Errorf("scenario %q: unknown budget %q", s.Label, s.Budget)
	}

	if s.Strategy != "" {
		st, err := model.ParseStrategy(s.Strategy)
		if err != nil {
			return def, fmt.Errorf("scenario %q: %w", s.Label, err)
		}
		def.Strategy = &st
	}
	return def, nil
}

// ScenarioDefinitions returns the configured scenarios, or the defaults
// when none are configured.
func ScenarioDefinitions(cfg Config) ([]model.ScenarioDef, error) {
	if len(cfg.Scenarios) == 0 {
		return scenario.DefaultDefinitions(), nil
	}
	defs := make([]model.ScenarioDef, 0, len(cfg.Scenarios))
	for _, sc := range cfg.Scenarios {
		def, err := sc.Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

package server

import (
	"github.com/theirongolddev/debtpath/internal/config"
	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/scenario"

	"github.com/shopspring/decimal"
)

// Debt is the wire form of a debt.
type Debt struct {
	ID             string          `json:"id"`
	Name           string          `json:"name,omitempty"`
	Kind           string          `json:"kind,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	APR            decimal.Decimal `json:"apr"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

// SimulateRequest is the body of POST /v1/simulate.
type SimulateRequest struct {
	Debts            []Debt          `json:"debts"`
	MonthlyBudget    decimal.Decimal `json:"monthly_budget"`
	Strategy         string          `json:"strategy,omitempty"`
	MaxMonths        int             `json:"max_months,omitempty"`
	IncludeSchedules bool            `json:"include_schedules,omitempty"`
}

// CompareRequest is the body of POST /v1/compare.
type CompareRequest struct {
	Debts         []Debt          `json:"debts"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	MaxMonths     int             `json:"max_months,omitempty"`
}

// AmortizeRequest is the body of POST /v1/amortize.
type AmortizeRequest struct {
	Principal decimal.Decimal `json:"principal"`
	APR       decimal.Decimal `json:"apr"`
	Payment   decimal.Decimal `json:"payment"`
	MaxMonths int             `json:"max_months,omitempty"`
}

// ScenariosRequest is the body of POST /v1/scenarios. Without scenarios the
// default minimum, recommended, and aggressive set is used.
type ScenariosRequest struct {
	Debts     []Debt                  `json:"debts"`
	Strategy  string                  `json:"strategy,omitempty"`
	Scenarios []config.ScenarioConfig `json:"scenarios,omitempty"`
}

// Row is one schedule period.
type Row struct {
	Period          int             `json:"period"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	InterestAccrued decimal.Decimal `json:"interest"`
	PrincipalPaid   decimal.Decimal `json:"principal"`
	Payment         decimal.Decimal `json:"payment"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
}

// Payoff marks when a debt was settled.
type Payoff struct {
	DebtID string `json:"debt_id"`
	Period int    `json:"period"`
}

// Result summarizes a simulation.
type Result struct {
	Strategy          string           `json:"strategy"`
	MonthlyBudget     decimal.Decimal  `json:"monthly_budget"`
	Order             []string         `json:"order"`
	Payoffs           []Payoff         `json:"payoffs"`
	MonthsToPayoff    int              `json:"months_to_payoff"`
	YearsToPayoff     int              `json:"years_to_payoff"`
	TotalInterestPaid decimal.Decimal  `json:"total_interest"`
	TotalPaid         decimal.Decimal  `json:"total_paid"`
	Incomplete        bool             `json:"incomplete"`
	Unamortizable     []string         `json:"unamortizable,omitempty"`
	Schedules         map[string][]Row `json:"schedules,omitempty"`
}

// CompareResponse is returned by POST /v1/compare.
type CompareResponse struct {
	Snowball      Result          `json:"snowball"`
	Avalanche     Result          `json:"avalanche"`
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
	Recommended   string          `json:"recommended"`
}

// AmortizeResponse is returned by POST /v1/amortize.
type AmortizeResponse struct {
	Schedule      []Row           `json:"schedule"`
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PaidOff       bool            `json:"paid_off"`
}

// ScenarioView is one entry of a scenarios response.
type ScenarioView struct {
	Label          string          `json:"label"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	YearsToPayoff  int             `json:"years_to_payoff"`
	Result         Result          `json:"result"`
}

// ScenariosResponse is returned by POST /v1/scenarios, in request order.
type ScenariosResponse struct {
	Scenarios []ScenarioView `json:"scenarios"`
}

func toModelDebts(in []Debt) []model.Debt {
	out := make([]model.Debt, len(in))
	for i, d := range in {
		out[i] = model.Debt{
			ID:             d.ID,
			Name:           d.Name,
			Kind:           d.Kind,
			Balance:        d.Balance,
			APR:            d.APR,
			MinimumPayment: d.MinimumPayment,
		}
	}
	return out
}

func toRows(plans []model.PaymentPlan) []Row {
	rows := make([]Row, len(plans))
	for i, p := range plans {
		rows[i] = Row{
			Period:          p.Period,
			OpeningBalance:  p.OpeningBalance,
			InterestAccrued: p.InterestAccrued,
			PrincipalPaid:   p.PrincipalPaid,
			Payment:         p.Payment,
			ClosingBalance:  p.ClosingBalance,
		}
	}
	return rows
}

func toResult(res model.SimulationResult, withSchedules bool) Result {
	out := Result{
		Strategy:          res.Strategy.String(),
		MonthlyBudget:     res.MonthlyBudget,
		Order:             res.Order,
		Payoffs:           make([]Payoff, len(res.Payoffs)),
		MonthsToPayoff:    res.MonthsToPayoff,
		YearsToPayoff:     scenario.YearsToPayoff(res.MonthsToPayoff),
		TotalInterestPaid: res.TotalInterestPaid,
		TotalPaid:         res.TotalPaid,
		Incomplete:        res.Incomplete,
		Unamortizable:     res.Unamortizable,
	}
	if out.Order == nil {
		out.Order = []string{}
	}
	for i, p := range res.Payoffs {
		out.Payoffs[i] = Payoff{DebtID: p.DebtID, Period: p.Period}
	}
	if withSchedules {
		out.Schedules = make(map[string][]Row, len(res.Schedules))
		for id, plans := range res.Schedules {
			out.Schedules[id] = toRows(plans)
		}
	}
	return out
}

package store

import (
	"strings"
	"time"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is a saved summary of one simulation.
type Plan struct {
	ID            string
	Label         string
	Strategy      string
	MonthlyBudget decimal.Decimal
	Months        int
	TotalInterest decimal.Decimal
	TotalPaid     decimal.Decimal
	Incomplete    bool
	PayoffOrder   []string
	CreatedAt     time.Time
}

// SavePlan records a summary of res under a new id.
func (s *Store) SavePlan(label string, res model.SimulationResult) (Plan, error) {
	order := make([]string, len(res.Payoffs))
	for i, p := range res.Payoffs {
		order[i] = p.DebtID
	}

	p := Plan{
		ID:            uuid.NewString(),
		Label:         label,
		Strategy:      res.Strategy.String(),
		MonthlyBudget: res.MonthlyBudget,
		Months:        res.MonthsToPayoff,
		TotalInterest: res.TotalInterestPaid,
		TotalPaid:     res.TotalPaid,
		Incomplete:    res.Incomplete,
		PayoffOrder:   order,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}

	incomplete := 0
	if p.Incomplete {
		incomplete = 1
	}

	_, err := s.db.Exec(s.rebind(`INSERT INTO plans
		(id, label, strategy, monthly_budget, months, total_interest, total_paid,
		 incomplete, payoff_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Label, p.Strategy, p.MonthlyBudget, p.Months, p.TotalInterest, p.TotalPaid,
		incomplete, strings.Join(p.PayoffOrder, ","), p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Plan{}, err
	}
	return p, nil
}

// ListPlans returns saved plans, newest first. limit <= 0 returns all.
func (s *Store) ListPlans(limit int) ([]Plan, error) {
	query := `SELECT id, label, strategy, monthly_budget, months, total_interest, total_paid,
		incomplete, payoff_order, created_at
		FROM plans ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var incomplete int
		var order, created string
		err := rows.Scan(&p.ID, &p.Label, &p.Strategy, &p.MonthlyBudget, &p.Months,
			&p.TotalInterest, &p.TotalPaid, &incomplete, &order, &created)
		if err != nil {
			return nil, err
		}
		p.Incomplete = incomplete != 0
		if order != "" {
			p.PayoffOrder = strings.Split(order, ",")
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, created)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

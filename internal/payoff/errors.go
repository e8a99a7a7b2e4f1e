package payoff

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDebt is matched by every *DebtError.
	ErrInvalidDebt = errors.New("invalid debt")
	// ErrInsufficientBudget is matched by every *BudgetError.
	ErrInsufficientBudget = errors.New("insufficient budget")
	ErrInvalidStrategy    = errors.New("invalid strategy")
	ErrTargetUnreachable  = errors.New("payoff target unreachable")
)

// DebtError reports a debt rejected before simulation.
type DebtError struct {
	ID     string
	Reason string
}

func (e *DebtError) Error() string {
	return fmt.Sprintf("invalid debt %q: %s", e.ID, e.Reason)
}

func (e *DebtError) Unwrap() error { return ErrInvalidDebt }

// BudgetError reports a monthly budget below the sum of minimum payments.
type BudgetError struct {
	Budget   decimal.Decimal
	Required decimal.Decimal
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("monthly budget %s is below the %s needed to cover minimum payments",
		e.Budget.StringFixed(2), e.Required.StringFixed(2))
}

func (e *BudgetError) Unwrap() error { return ErrInsufficientBudget }

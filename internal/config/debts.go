package config

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// debtsFile is the on-disk shape of a debts file:
//
//	[[debt]]
//	name = "Visa"
//	kind = "credit_card"
//	balance = "4200.00"
//	apr = "24.99"
//	minimum_payment = 105
//
// Amounts may be TOML strings or numbers; strings are read exactly.
type debtsFile struct {
	Debts []debtEntry `toml:"debt"`
}

type debtEntry struct {
	ID             string          `toml:"id,omitempty"`
	Name           string          `toml:"name,omitempty"`
	Kind           string          `toml:"kind,omitempty"`
	Balance        decimal.Decimal `toml:"balance"`
	APR            decimal.Decimal `toml:"apr"`
	MinimumPayment decimal.Decimal `toml:"minimum_payment"`
}

// LoadDebts reads a TOML debts file.
func LoadDebts(path string) ([]model.Debt, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("reading debts file: %w", err)
	}
	debts, err := ParseDebts(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return debts, nil
}

// ParseDebts decodes [[debt]] tables. Entries without an id get a random one.
func ParseDebts(data []byte) ([]model.Debt, error) {
	var f debtsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing debts: %w", err)
	}

	debts := make([]model.Debt, 0, len(f.Debts))
	for i, e := range f.Debts {
		kind := e.Kind
		if kind == "" {
			kind = model.KindOther
		}
		if !slices.Contains(model.Kinds, kind) {
			return nil, fmt.Errorf("debt %d: unknown kind %q", i+1, e.Kind)
		}
		if e.Balance.IsNegative() || e.APR.IsNegative() || e.MinimumPayment.IsNegative() {
			return nil, fmt.Errorf("debt %d: amounts must not be negative", i+1)
		}

		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		debts = append(debts, model.Debt{
			ID:             id,
			Name:           e.Name,
			Kind:           kind,
			Balance:        e.Balance.Round(2),
			APR:            e.APR,
			MinimumPayment: e.MinimumPayment.Round(2),
		})
	}
	return debts, nil
}

// EncodeDebts renders debts in the debts file format.
func EncodeDebts(debts []model.Debt) ([]byte, error) {
	f := debtsFile{Debts: make([]debtEntry, len(debts))}
	for i, d := range debts {
		f.Debts[i] = debtEntry{
			ID:             d.ID,
			Name:           d.Name,
			Kind:           d.Kind,
			Balance:        d.Balance,
			APR:            d.APR,
			MinimumPayment: d.MinimumPayment,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("encoding debts: %w", err)
	}
	return buf.Bytes(), nil
}

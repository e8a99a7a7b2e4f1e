package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const sampleDebts = `
[[debt]]
id = "visa"
name = "Visa"
kind = "credit_card"
balance = 4200.5
apr = 24.99
minimum_payment = 105

[[debt]]
name = "Dentist"
kind = "medical"
balance = 600
apr = 0
minimum_payment = 50
`

func TestParseDebts(t *testing.T) {
	debts, err := ParseDebts([]byte(sampleDebts))
	if err != nil {
		t.Fatalf("ParseDebts: %v", err)
	}
	if len(debts) != 2 {
		t.Fatalf("len = %d, want 2", len(debts))
	}

	visa := debts[0]
	if visa.ID != "visa" || visa.Kind != model.KindCreditCard {
		t.Fatalf("visa = %+v", visa)
	}
	if !visa.Balance.Equal(decimal.RequireFromString("4200.50")) {
		t.Fatalf("balance = %s", visa.Balance)
	}
	if !visa.APR.Equal(decimal.RequireFromString("24.99")) {
		t.Fatalf("apr = %s", visa.APR)
	}

	if _, err := uuid.Parse(debts[1].ID); err != nil {
		t.Fatalf("generated id %q is not a uuid: %v", debts[1].ID, err)
	}
}

func TestParseDebts_StringAmountsAreExact(t *testing.T) {
	raw := "[[debt]]\nid = \"x\"\nbalance = \"1000.005\"\napr = \"19.999999999999999\"\nminimum_payment = \"25\"\n"
	debts, err := ParseDebts([]byte(raw))
	if err != nil {
		t.Fatalf("ParseDebts: %v", err)
	}
	if got := debts[0].APR.String(); got != "19.999999999999999" {
		t.Fatalf("apr = %s, want 19.999999999999999", got)
	}
	if got := debts[0].Balance.String(); got != "1000.01" {
		t.Fatalf("balance = %s, want 1000.01", got)
	}
}

func TestParseDebts_DefaultKind(t *testing.T) {
	debts, err := ParseDebts([]byte("[[debt]]\nid = \"x\"\nbalance = 10\napr = 1\nminimum_payment = 1\n"))
	if err != nil {
		t.Fatalf("ParseDebts: %v", err)
	}
	if debts[0].Kind != model.KindOther {
		t.Fatalf("kind = %q, want other", debts[0].Kind)
	}
}

func TestParseDebts_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad toml", "[[debt]\nbalance="},
		{"unknown kind", "[[debt]]\nkind = \"yacht\"\nbalance = 1\napr = 1\nminimum_payment = 1\n"},
		{"negative balance", "[[debt]]\nbalance = -1\napr = 1\nminimum_payment = 1\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDebts([]byte(tc.raw)); err == nil {
				t.Fatal("want error")
			}
		})
	}
}

func TestEncodeDebtsRoundTrip(t *testing.T) {
	debts, err := ParseDebts([]byte(sampleDebts))
	if err != nil {
		t.Fatalf("ParseDebts: %v", err)
	}
	data, err := EncodeDebts(debts)
	if err != nil {
		t.Fatalf("EncodeDebts: %v", err)
	}

	path := filepath.Join(t.TempDir(), "debts.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	back, err := LoadDebts(path)
	if err != nil {
		t.Fatalf("LoadDebts: %v", err)
	}
	if len(back) != len(debts) {
		t.Fatalf("len = %d, want %d", len(back), len(debts))
	}
	for i := range debts {
		if back[i].ID != debts[i].ID || !back[i].Balance.Equal(debts[i].Balance) {
			t.Fatalf("debt %d = %+v, want %+v", i, back[i], debts[i])
		}
	}
}

func TestLoadDebts_Missing(t *testing.T) {
	if _, err := LoadDebts(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

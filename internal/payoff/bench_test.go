package payoff

import (
	"fmt"
	"testing"

	"github.com/theirongolddev/debtpath/internal/model"

	"github.com/shopspring/decimal"
)

func benchDebts(n int) []model.Debt {
	debts := make([]model.Debt, n)
	for i := range debts {
		debts[i] = model.Debt{
			ID:             fmt.Sprintf("d%02d", i),
			Balance:        decimal.NewFromInt(int64(500 + 750*i)),
			APR:            decimal.NewFromFloat(4.5 + float64(i%7)*3.25),
			MinimumPayment: decimal.NewFromInt(int64(25 + 5*i)),
		}
	}
	return debts
}

func BenchmarkSimulate(b *testing.B) {
	debts := benchDebts(20)
	budget := MinimumBudget(debts).Add(decimal.NewFromInt(400))
	s := model.Strategy{Kind: model.Avalanche}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Simulate(debts, s, budget, 600); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAmortize(b *testing.B) {
	principal, apr, payment := decimal.NewFromInt(25000), decimal.NewFromFloat(6.8), decimal.NewFromInt(300)
	for i := 0; i < b.N; i++ {
		_ = Amortize(principal, apr, payment, 600)
	}
}

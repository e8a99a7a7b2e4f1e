package payoff

import (
	"reflect"
	"testing"

	"github.com/theirongolddev/debtpath/internal/model"
)

func debt(id, balance, apr, minimum string) model.Debt {
	return model.Debt{
		ID:             id,
		Balance:        dec(balance),
		APR:            dec(apr),
		MinimumPayment: dec(minimum),
	}
}

func TestOrder(t *testing.T) {
	tests := []struct {
		name     string
		debts    []model.Debt
		strategy model.Strategy
		want     []string
	}{
		{
			name: "snowball smallest balance first",
			debts: []model.Debt{
				debt("A", "5000", "10", "50"),
				debt("B", "1000", "10", "50"),
				debt("C", "3000", "10", "50"),
			},
			strategy: model.Strategy{Kind: model.Snowball},
			want:     []string{"B", "C", "A"},
		},
		{
			name: "avalanche highest rate first",
			debts: []model.Debt{
				debt("A", "1000", "12", "50"),
				debt("B", "1000", "24", "50"),
				debt("C", "1000", "18", "50"),
			},
			strategy: model.Strategy{Kind: model.Avalanche},
			want:     []string{"B", "C", "A"},
		},
		{
			name: "snowball ties keep input order",
			debts: []model.Debt{
				debt("X", "700", "5", "10"),
				debt("Y", "300", "9", "10"),
				debt("Z", "700", "20", "10"),
			},
			strategy: model.Strategy{Kind: model.Snowball},
			want:     []string{"Y", "X", "Z"},
		},
		{
			name: "avalanche ties keep input order",
			debts: []model.Debt{
				debt("X", "100", "18", "10"),
				debt("Y", "900", "18", "10"),
				debt("Z", "500", "21", "10"),
			},
			strategy: model.Strategy{Kind: model.Avalanche},
			want:     []string{"Z", "X", "Y"},
		},
		{
			name: "settled debts excluded",
			debts: []model.Debt{
				debt("A", "0", "30", "10"),
				debt("B", "200", "10", "10"),
			},
			strategy: model.Strategy{Kind: model.Avalanche},
			want:     []string{"B"},
		},
		{
			name: "custom keeps listed order and appends the rest",
			debts: []model.Debt{
				debt("A", "100", "1", "10"),
				debt("B", "200", "2", "10"),
				debt("C", "300", "3", "10"),
				debt("D", "400", "4", "10"),
			},
			strategy: model.CustomOrder("C", "nope", "A", "C"),
			want:     []string{"C", "A", "B", "D"},
		},
		{
			name: "custom drops settled ids",
			debts: []model.Debt{
				debt("A", "100", "1", "10"),
				debt("B", "0", "2", "10"),
			},
			strategy: model.CustomOrder("B", "A"),
			want:     []string{"A"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Order(tc.debts, tc.strategy)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Order = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOrderDoesNotMutateInput(t *testing.T) {
	debts := []model.Debt{
		debt("A", "5000", "10", "50"),
		debt("B", "1000", "10", "50"),
	}
	_ = Order(debts, model.Strategy{Kind: model.Snowball})
	if debts[0].ID != "A" || debts[1].ID != "B" {
		t.Fatalf("input reordered: %s, %s", debts[0].ID, debts[1].ID)
	}
}

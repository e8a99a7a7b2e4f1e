package scenario

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/theirongolddev/debtpath/internal/model"
	"github.com/theirongolddev/debtpath/internal/payoff"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debt(id, balance, apr, minimum string) model.Debt {
	return model.Debt{ID: id, Balance: dec(balance), APR: dec(apr), MinimumPayment: dec(minimum)}
}

func sampleDebts() []model.Debt {
	return []model.Debt{
		debt("A", "1000", "20", "30"),
		debt("B", "2000", "10", "50"),
		debt("C", "500", "15", "20"),
	}
}

var snowball = model.Strategy{Kind: model.Snowball}

func TestYearsToPayoff(t *testing.T) {
	tests := []struct {
		months, want int
	}{
		{0, 0},
		{1, 1},
		{12, 1},
		{13, 2},
		{24, 2},
		{25, 3},
		{600, 50},
	}
	for _, tc := range tests {
		if got := YearsToPayoff(tc.months); got != tc.want {
			t.Fatalf("YearsToPayoff(%d) = %d, want %d", tc.months, got, tc.want)
		}
	}
}

func TestBudget(t *testing.T) {
	debts := sampleDebts()
	tests := []struct {
		name string
		rule model.BudgetRule
		want string
	}{
		{"fixed", model.BudgetRule{Kind: model.BudgetFixed, Amount: dec("321.45")}, "321.45"},
		{"minimum", model.BudgetRule{Kind: model.BudgetMinimum}, "100"},
		{"plus percent", model.BudgetRule{Kind: model.BudgetMinimumPlusPercent, Percent: dec("50")}, "150"},
		{"plus percent rounds", model.BudgetRule{Kind: model.BudgetMinimumPlusPercent, Percent: dec("33.333")}, "133.33"},
		{"plus amount", model.BudgetRule{Kind: model.BudgetMinimumPlus, Amount: dec("75")}, "175"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Budget(debts, tc.rule, snowball)
			if err != nil {
				t.Fatalf("Budget: %v", err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("Budget = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestBudget_TargetMonths(t *testing.T) {
	one := []model.Debt{debt("card", "1200", "0", "25"), debt("done", "0", "18", "40")}
	got, err := Budget(one, model.BudgetRule{Kind: model.BudgetTargetMonths, Months: 12}, snowball)
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if !got.Equal(dec("100")) {
		t.Fatalf("single debt budget = %s, want 100", got)
	}

	// A target slower than the minimum keeps the minimum.
	got, err = Budget(one, model.BudgetRule{Kind: model.BudgetTargetMonths, Months: 120}, snowball)
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if !got.Equal(dec("25")) {
		t.Fatalf("slow target budget = %s, want minimum 25", got)
	}

	debts := sampleDebts()
	got, err = Budget(debts, model.BudgetRule{Kind: model.BudgetTargetMonths, Months: 24}, snowball)
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	res, err := payoff.Simulate(debts, snowball, got, 24)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if res.Incomplete {
		t.Fatalf("budget %s misses the 24 month target", got)
	}
}

func TestBudget_Invalid(t *testing.T) {
	if _, err := Budget(sampleDebts(), model.BudgetRule{Kind: "whatever"}, snowball); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("err = %v, want ErrInvalidScenario", err)
	}
	if _, err := Budget(sampleDebts(), model.BudgetRule{Kind: model.BudgetTargetMonths}, snowball); !errors.Is(err, ErrInvalidScenario) {
		t.Fatalf("err = %v, want ErrInvalidScenario", err)
	}
}

func TestPresent_Defaults(t *testing.T) {
	defs := DefaultDefinitions()
	p, err := Present(context.Background(), sampleDebts(), defs, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("len = %d, want 3", len(p))
	}

	views := p.Ordered(defs)
	labels := make([]string, len(views))
	for i, v := range views {
		labels[i] = v.Label
	}
	if want := []string{"minimum", "recommended", "aggressive"}; !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}

	wantBudgets := []string{"100", "150", "200"}
	for i, v := range views {
		if !v.MonthlyPayment.Equal(dec(wantBudgets[i])) {
			t.Fatalf("%s budget = %s, want %s", v.Label, v.MonthlyPayment, wantBudgets[i])
		}
		if v.YearsToPayoff != YearsToPayoff(v.Result.MonthsToPayoff) {
			t.Fatalf("%s years = %d for %d months", v.Label, v.YearsToPayoff, v.Result.MonthsToPayoff)
		}
	}

	// More money never takes longer.
	for i := 1; i < len(views); i++ {
		if views[i].Result.MonthsToPayoff > views[i-1].Result.MonthsToPayoff {
			t.Fatalf("%s takes longer than %s", views[i].Label, views[i-1].Label)
		}
	}
}

func TestPresent_MatchesDirectSimulation(t *testing.T) {
	debts := sampleDebts()
	defs := []model.ScenarioDef{{Label: "fixed", Budget: model.BudgetRule{Kind: model.BudgetFixed, Amount: dec("200")}}}
	p, err := Present(context.Background(), debts, defs, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	want, err := payoff.Simulate(debts, snowball, dec("200"), DefaultMaxMonths)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !reflect.DeepEqual(p["fixed"].Result, want) {
		t.Fatal("scenario result differs from a direct simulation")
	}
}

func TestPresent_SingleDebtUsesAmortize(t *testing.T) {
	debts := []model.Debt{debt("auto", "15000", "6.5", "300")}
	defs := []model.ScenarioDef{{Label: "min", Budget: model.BudgetRule{Kind: model.BudgetMinimum}, MaxMonths: 120}}

	p, err := Present(context.Background(), debts, defs, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	got := p["min"].Result.Schedules["auto"]
	want := payoff.Amortize(dec("15000"), dec("6.5"), dec("300"), 120)
	if !reflect.DeepEqual(got, want) {
		t.Fatal("single debt schedule differs from Amortize")
	}
}

func TestRun_SingleDebtKeepsSettledSchedules(t *testing.T) {
	debts := []model.Debt{debt("A", "1000", "12", "50"), debt("Z", "0", "5", "25")}
	def := model.ScenarioDef{Label: "min", Budget: model.BudgetRule{Kind: model.BudgetFixed, Amount: dec("100")}}

	view, err := Run(debts, def, snowball)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, ok := view.Result.Schedules["Z"]
	if !ok {
		t.Fatal("settled debt Z missing from Schedules")
	}
	if len(rows) != 0 {
		t.Fatalf("Z has %d rows, want 0", len(rows))
	}

	sim, err := payoff.Simulate(debts, snowball, dec("100"), DefaultMaxMonths)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(sim.Schedules) != len(view.Result.Schedules) {
		t.Fatalf("Run has %d schedules, Simulate has %d", len(view.Result.Schedules), len(sim.Schedules))
	}
}

func TestPresent_StrategyOverride(t *testing.T) {
	aval := model.Strategy{Kind: model.Avalanche}
	defs := []model.ScenarioDef{
		{Label: "default", Budget: model.BudgetRule{Kind: model.BudgetMinimumPlus, Amount: dec("50")}},
		{Label: "override", Budget: model.BudgetRule{Kind: model.BudgetMinimumPlus, Amount: dec("50")}, Strategy: &aval},
	}
	p, err := Present(context.Background(), sampleDebts(), defs, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if p["default"].Result.Strategy.Kind != model.Snowball {
		t.Fatalf("default strategy = %s", p["default"].Result.Strategy)
	}
	if p["override"].Result.Strategy.Kind != model.Avalanche {
		t.Fatalf("override strategy = %s", p["override"].Result.Strategy)
	}
}

func TestPresent_InvalidLabels(t *testing.T) {
	tests := []struct {
		name string
		defs []model.ScenarioDef
	}{
		{"empty", []model.ScenarioDef{{Budget: model.BudgetRule{Kind: model.BudgetMinimum}}}},
		{"duplicate", []model.ScenarioDef{
			{Label: "x", Budget: model.BudgetRule{Kind: model.BudgetMinimum}},
			{Label: "x", Budget: model.BudgetRule{Kind: model.BudgetMinimum}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Present(context.Background(), sampleDebts(), tc.defs, snowball); !errors.Is(err, ErrInvalidScenario) {
				t.Fatalf("err = %v, want ErrInvalidScenario", err)
			}
		})
	}
}

func TestPresent_InsufficientBudget(t *testing.T) {
	defs := []model.ScenarioDef{
		{Label: "ok", Budget: model.BudgetRule{Kind: model.BudgetMinimum}},
		{Label: "short", Budget: model.BudgetRule{Kind: model.BudgetFixed, Amount: dec("50")}},
	}
	_, err := Present(context.Background(), sampleDebts(), defs, snowball)
	if !errors.Is(err, payoff.ErrInsufficientBudget) {
		t.Fatalf("err = %v, want ErrInsufficientBudget", err)
	}

	single := []model.Debt{debt("A", "1000", "10", "60")}
	_, err = Present(context.Background(), single, defs[1:], snowball)
	if !errors.Is(err, payoff.ErrInsufficientBudget) {
		t.Fatalf("single debt err = %v, want ErrInsufficientBudget", err)
	}
}

func TestPresent_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Present(ctx, sampleDebts(), DefaultDefinitions(), snowball); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestPresent_ManyScenarios(t *testing.T) {
	var defs []model.ScenarioDef
	for i := 0; i < 40; i++ {
		defs = append(defs, model.ScenarioDef{
			Label:  fmt.Sprintf("plus-%d", i*10),
			Budget: model.BudgetRule{Kind: model.BudgetMinimumPlus, Amount: decimal.NewFromInt(int64(i * 10))},
		})
	}
	p, err := Present(context.Background(), sampleDebts(), defs, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	for i, v := range p.Ordered(defs) {
		want := dec("100").Add(decimal.NewFromInt(int64(i * 10)))
		if !v.MonthlyPayment.Equal(want) {
			t.Fatalf("%s budget = %s, want %s", v.Label, v.MonthlyPayment, want)
		}
	}
}

func TestPresent_Empty(t *testing.T) {
	p, err := Present(context.Background(), sampleDebts(), nil, snowball)
	if err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(p) != 0 {
		t.Fatalf("len = %d, want 0", len(p))
	}
}

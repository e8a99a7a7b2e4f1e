package payoff

import (
	"sort"

	"github.com/theirongolddev/debtpath/internal/model"
)

// Order returns the ids of outstanding debts in the sequence they become the
// payoff target. Settled debts are excluded. Ties keep input order.
func Order(debts []model.Debt, s model.Strategy) []string {
	idx := make([]int, 0, len(debts))
	for i, d := range debts {
		if !d.Settled() {
			idx = append(idx, i)
		}
	}

	switch s.Kind {
	case model.Snowball:
		sort.SliceStable(idx, func(a, b int) bool {
			return debts[idx[a]].Balance.LessThan(debts[idx[b]].Balance)
		})
	case model.Avalanche:
		sort.SliceStable(idx, func(a, b int) bool {
			return debts[idx[a]].APR.GreaterThan(debts[idx[b]].APR)
		})
	case model.Custom:
		idx = customOrder(debts, idx, s.Order)
	}

	ids := make([]string, len(idx))
	for i, j := range idx {
		ids[i] = debts[j].ID
	}
	return ids
}

// customOrder places listed outstanding debts first, in list order, then the
// rest in input order. Unknown and repeated ids are ignored.
func customOrder(debts []model.Debt, outstanding []int, listed []string) []int {
	pos := make(map[string]int, len(outstanding))
	for _, i := range outstanding {
		pos[debts[i].ID] = i
	}

	out := make([]int, 0, len(outstanding))
	used := make(map[int]bool, len(outstanding))
	for _, id := range listed {
		i, ok := pos[id]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		out = append(out, i)
	}
	for _, i := range outstanding {
		if !used[i] {
			out = append(out, i)
		}
	}
	return out
}

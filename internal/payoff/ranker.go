// Package payoff ranks debts and simulates their month-by-month repayment.
package payoff

import (
	"slices"

	"github.com/Veraticus/snowball/internal/model"
)

// Rank returns a copy of debts ordered by cash-flow recapture, highest first.
// Debts with equal recapture keep their relative input order.
func Rank(debts []model.Debt) []model.Debt {
	ranked := model.CloneDebts(debts)
	slices.SortStableFunc(ranked, func(a, b model.Debt) int {
		return b.CashFlowRecap.Cmp(a.CashFlowRecap)
	})
	return ranked
}

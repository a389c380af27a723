// Package model contains the value types shared by the payoff engine and its presenters.
package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Debt is a single creditor's obligation.
//
// Debt has value semantics: decimals are immutable, so copying the struct (or
// cloning a slice of them) never aliases the original balances.
type Debt struct {
	Creditor      string          `json:"creditor"`
	Balance       decimal.Decimal `json:"balance"`
	Limit         decimal.Decimal `json:"limit"`
	MinPayment    decimal.Decimal `json:"min_payment"`
	CashFlowRecap decimal.Decimal `json:"cash_flow_recap"`
	Utilization   decimal.Decimal `json:"utilization"`
}

// NewDebt builds a Debt and derives its ranking and display fields.
//
// CashFlowRecap is fixed at creation from the initial balance and minimum
// payment; later balance changes never recompute it.
func NewDebt(creditor string, balance, limit, minPayment decimal.Decimal) Debt {
	d := Debt{
		Creditor:   creditor,
		Balance:    balance,
		Limit:      limit,
		MinPayment: minPayment,
	}
	if limit.IsPositive() {
		d.Utilization = balance.Div(limit).Mul(hundred)
	}
	if balance.IsPositive() {
		d.CashFlowRecap = minPayment.Div(balance).Mul(hundred)
	}
	return d
}

// Settled reports whether the debt has nothing left to pay.
func (d Debt) Settled() bool {
	return !d.Balance.IsPositive()
}

// CloneDebts returns an independent copy of debts.
func CloneDebts(debts []Debt) []Debt {
	if debts == nil {
		return []Debt{}
	}
	return slices.Clone(debts)
}

// TotalBalance sums the balances of debts.
func TotalBalance(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		total = total.Add(d.Balance)
	}
	return total
}

// TotalMinPayment sums the minimum payments of debts that are not settled.
func TotalMinPayment(debts []Debt) decimal.Decimal {
	total := decimal.Zero
	for _, d := range debts {
		if d.Settled() {
			continue
		}
		total = total.Add(d.MinPayment)
	}
	return total
}

package testutil

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
	"github.com/Veraticus/snowball/internal/payoff"
)

// DebtBuilder collects debts for a test. Invalid amounts fail the test.
type DebtBuilder struct {
	t        *testing.T
	cashFlow decimal.Decimal
	debts    []model.Debt
}

// NewDebtBuilder creates an empty builder with zero cash flow.
func NewDebtBuilder(t *testing.T) *DebtBuilder {
	t.Helper()
	return &DebtBuilder{t: t, debts: []model.Debt{}}
}

// WithDebt adds a debt given as decimal strings.
func (b *DebtBuilder) WithDebt(creditor, balance, limit, minPayment string) *DebtBuilder {
	b.t.Helper()
	b.debts = append(b.debts, model.NewDebt(
		creditor,
		b.amount(balance),
		b.amount(limit),
		b.amount(minPayment),
	))
	return b
}

// WithFixture adds the fixture's debts and takes its cash flow.
func (b *DebtBuilder) WithFixture(f Fixture) *DebtBuilder {
	b.t.Helper()
	for _, d := range f.Debts() {
		b.WithDebt(d.Creditor, d.Balance, d.Limit, d.MinPayment)
	}
	b.cashFlow = f.CashFlow()
	return b
}

// WithCashFlow sets the monthly cash flow.
func (b *DebtBuilder) WithCashFlow(amount string) *DebtBuilder {
	b.t.Helper()
	b.cashFlow = b.amount(amount)
	return b
}

// Debts returns a copy of the collected debts.
func (b *DebtBuilder) Debts() []model.Debt {
	return model.CloneDebts(b.debts)
}

// CashFlow returns the configured cash flow.
func (b *DebtBuilder) CashFlow() decimal.Decimal {
	return b.cashFlow
}

// Plan builds the repayment plan for horizon months or fails the test.
func (b *DebtBuilder) Plan(horizon int) *payoff.Plan {
	b.t.Helper()
	plan, err := payoff.BuildPlan(b.Debts(), b.cashFlow, horizon)
	if err != nil {
		b.t.Fatalf("failed to build plan: %v", err)
	}
	return plan
}

// FixturePlan is shorthand for building a fixture's plan.
func FixturePlan(t *testing.T, f Fixture, horizon int) *payoff.Plan {
	t.Helper()
	return NewDebtBuilder(t).WithFixture(f).Plan(horizon)
}

func (b *DebtBuilder) amount(s string) decimal.Decimal {
	b.t.Helper()
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		b.t.Fatalf("invalid amount %q: %v", s, err)
	}
	return d
}

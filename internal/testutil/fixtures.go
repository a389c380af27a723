// Package testutil provides debt fixtures and builders shared by package tests.
//
// Example usage:
//
//	plan := testutil.NewDebtBuilder(t).
//		WithFixture(testutil.FixtureSnowball).
//		WithDebt("Gym", "90", "0", "30").
//		Plan(60)
package testutil

import "github.com/shopspring/decimal"

// Fixture is a predefined set of debts and the cash flow they are planned with.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns what the fixture exercises.
	Description() string

	// Debts returns the fixture's debts as creditor, balance, limit, minimum.
	Debts() []DebtSpec

	// CashFlow returns the monthly cash flow the fixture is planned with.
	CashFlow() decimal.Decimal
}

// DebtSpec describes one debt with decimal strings.
type DebtSpec struct {
	Creditor   string
	Balance    string
	Limit      string
	MinPayment string
}

type fixture struct {
	name        string
	description string
	cashFlow    string
	debts       []DebtSpec
}

func (f *fixture) Name() string { return f.name }
func (f *fixture) Description() string { return f.description }
func (f *fixture) Debts() []DebtSpec { return f.debts }
func (f *fixture) CashFlow() decimal.Decimal { return decimal.RequireFromString(f.cashFlow) }

// Predefined fixtures for common test scenarios.
var (
	// FixtureSingleCard pays one card off in six months.
	FixtureSingleCard = &fixture{
		name:        "SingleCard",
		description: "One 1200 card with a 100 minimum and 100 of cash flow",
		cashFlow:    "100",
		debts: []DebtSpec{
			{Creditor: "Card", Balance: "1200", Limit: "5000", MinPayment: "100"},
		},
	}

	// FixtureSnowball settles the store card in month 10, after which its
	// minimum rolls into the car loan, settled in month 22.
	FixtureSnowball = &fixture{
		name:        "Snowball",
		description: "Two debts with no extra cash flow",
		cashFlow:    "0",
		debts: []DebtSpec{
			{Creditor: "Car loan", Balance: "1000", Limit: "0", MinPayment: "20"},
			{Creditor: "Store card", Balance: "500", Limit: "1000", MinPayment: "50"},
		},
	}

	// FixtureStalled never pays anything.
	FixtureStalled = &fixture{
		name:        "Stalled",
		description: "A debt with no minimum and no cash flow",
		cashFlow:    "0",
		debts: []DebtSpec{
			{Creditor: "Frozen", Balance: "100", Limit: "0", MinPayment: "0"},
		},
	}

	// FixtureEmpty has nothing to repay.
	FixtureEmpty = &fixture{
		name:        "Empty",
		description: "No debts with some cash flow",
		cashFlow:    "100",
	}
)

package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/snowball/internal/testutil"
)

func TestFixturePlans(t *testing.T) {
	tests := []struct {
		fixture      testutil.Fixture
		payoffMonths int
		paidOff      bool
	}{
		{fixture: testutil.FixtureSingleCard, payoffMonths: 6, paidOff: true},
		{fixture: testutil.FixtureSnowball, payoffMonths: 22, paidOff: true},
		{fixture: testutil.FixtureStalled, payoffMonths: 0, paidOff: false},
		{fixture: testutil.FixtureEmpty, payoffMonths: 0, paidOff: true},
	}

	for _, tt := range tests {
		t.Run(tt.fixture.Name(), func(t *testing.T) {
			assert.NotEmpty(t, tt.fixture.Description())
			plan := testutil.FixturePlan(t, tt.fixture, 60)
			assert.Equal(t, tt.payoffMonths, plan.PayoffMonths)
			assert.Equal(t, tt.paidOff, plan.PaidOff())
		})
	}
}

func TestDebtBuilder(t *testing.T) {
	b := testutil.NewDebtBuilder(t).
		WithFixture(testutil.FixtureSnowball).
		WithDebt("Gym", "90", "", "30").
		WithCashFlow("25")

	debts := b.Debts()
	require.Len(t, debts, 3)
	assert.Equal(t, "Gym", debts[2].Creditor)
	assert.True(t, debts[2].Limit.IsZero())
	assert.Equal(t, "25", b.CashFlow().String())

	// Debts hands out copies.
	debts[0].Creditor = "changed"
	assert.Equal(t, "Car loan", b.Debts()[0].Creditor)

	plan := b.Plan(60)
	assert.Equal(t, "Gym", plan.Ranked[0].Creditor)
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/snowball/internal/common"
)

const samplePlan = `cash_flow: 250.50
horizon: 36
debts:
  - creditor: Visa
    balance: 1200
    limit: 5000
    min_payment: 100
  - creditor: Store card
    balance: 500.25
    min_payment: 50
`

func TestParsePlanYAML(t *testing.T) {
	plan, err := ParsePlanYAML(strings.NewReader(samplePlan))
	require.NoError(t, err)

	assert.True(t, plan.CashFlow.Equal(decimal.RequireFromString("250.5")))
	assert.Equal(t, 36, plan.Horizon)
	require.Len(t, plan.Debts, 2)

	visa := plan.Debts[0]
	assert.Equal(t, "Visa", visa.Creditor)
	assert.True(t, visa.Balance.Equal(decimal.NewFromInt(1200)))
	assert.True(t, visa.Limit.Equal(decimal.NewFromInt(5000)))
	assert.True(t, visa.MinPayment.Equal(decimal.NewFromInt(100)))

	store := plan.Debts[1]
	assert.True(t, store.Balance.Equal(decimal.RequireFromString("500.25")))
	assert.True(t, store.Limit.IsZero())
}

func TestParsePlanYAML_Errors(t *testing.T) {
	_, err := ParsePlanYAML(strings.NewReader("cash_flow: [oops"))
	assert.Error(t, err)

	_, err = ParsePlanYAML(strings.NewReader("cashflow: 10\n"))
	assert.Error(t, err, "unknown keys are rejected")

	plan, err := ParsePlanYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, plan.Debts)
}

func TestLoadPlanFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(samplePlan), 0o600))
	plan, err := LoadPlanFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, plan.Debts, 2)

	csvPath := filepath.Join(dir, "debts.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("creditor,balance,limit,min_payment\nVisa,100,1000,10\n"), 0o600))
	plan, err = LoadPlanFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, plan.Debts, 1)
	assert.True(t, plan.CashFlow.IsZero())
	assert.Zero(t, plan.Horizon)

	txtPath := filepath.Join(dir, "debts.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("nope"), 0o600))
	_, err = LoadPlanFile(txtPath)
	assert.ErrorIs(t, err, common.ErrUnsupportedFileExt)

	_, err = LoadPlanFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestDebtsFromViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(samplePlan)))

	debts, err := DebtsFromViper(v)
	require.NoError(t, err)
	require.Len(t, debts, 2)
	assert.Equal(t, "Store card", debts[1].Creditor)
	assert.True(t, debts[1].MinPayment.Equal(decimal.NewFromInt(50)))

	empty, err := DebtsFromViper(viper.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("SNOWBALL_TEST_DIR", "/tmp/plans")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "plans", "debts.yaml"), ExpandPath("~/plans/debts.yaml"))
	assert.Equal(t, "/tmp/plans/debts.yaml", ExpandPath("$SNOWBALL_TEST_DIR/debts.yaml"))
	assert.Equal(t, "relative.yaml", ExpandPath("relative.yaml"))
}

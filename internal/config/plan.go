package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/snowball/internal/common"
	"github.com/Veraticus/snowball/internal/model"
)

// DefaultHorizon is the number of months displayed when none is configured.
const DefaultHorizon = 60

// DebtEntry is one debt as written in a plan file or config.
type DebtEntry struct {
	Creditor   string  `yaml:"creditor" mapstructure:"creditor"`
	Balance    float64 `yaml:"balance" mapstructure:"balance"`
	Limit      float64 `yaml:"limit" mapstructure:"limit"`
	MinPayment float64 `yaml:"min_payment" mapstructure:"min_payment"`
}

// Input converts the entry to unvalidated debt input.
func (e DebtEntry) Input() model.DebtInput {
	return model.DebtInput{
		Creditor:   e.Creditor,
		Balance:    decimal.NewFromFloat(e.Balance),
		Limit:      decimal.NewFromFloat(e.Limit),
		MinPayment: decimal.NewFromFloat(e.MinPayment),
	}
}

// PlanFile is the on-disk description of a repayment plan.
type PlanFile struct {
	Debts    []DebtEntry `yaml:"debts"`
	CashFlow float64     `yaml:"cash_flow"`
	Horizon  int         `yaml:"horizon"`
}

// Plan is a loaded plan ready for validation.
type Plan struct {
	CashFlow decimal.Decimal
	Debts    []model.DebtInput
	Horizon  int
}

// Inputs returns the plan's debts as unvalidated input.
func (p PlanFile) Inputs() []model.DebtInput {
	inputs := make([]model.DebtInput, 0, len(p.Debts))
	for _, e := range p.Debts {
		inputs = append(inputs, e.Input())
	}
	return inputs
}

// ParsePlanYAML decodes a YAML plan.
func ParsePlanYAML(r io.Reader) (*Plan, error) {
	var file PlanFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &Plan{Debts: []model.DebtInput{}}, nil
		}
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	return &Plan{
		CashFlow: decimal.NewFromFloat(file.CashFlow),
		Horizon:  file.Horizon,
		Debts:    file.Inputs(),
	}, nil
}

// LoadPlanFile reads a YAML plan or a CSV list of debts. CSV files carry no
// cash flow or horizon, so those stay zero.
func LoadPlanFile(path string) (*Plan, error) {
	path = ExpandPath(path)

	f, err := os.Open(path) //nolint:gosec // user-supplied plan path
	if err != nil {
		return nil, fmt.Errorf("failed to open plan file: %w", err)
	}
	defer func() { _ = f.Close() }()

	common.LogDebug("Loading plan file", common.Fields{"path": path})

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParsePlanYAML(f)
	case ".csv":
		debts, err := ParseDebtsCSV(f)
		if err != nil {
			return nil, err
		}
		return &Plan{Debts: debts}, nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFileExt, filepath.Ext(path))
	}
}

// DebtsFromViper reads debts listed under the "debts" key of the config.
func DebtsFromViper(v *viper.Viper) ([]model.DebtInput, error) {
	var entries []DebtEntry
	if err := v.UnmarshalKey("debts", &entries); err != nil {
		return nil, fmt.Errorf("%w: debts: %v", common.ErrInvalidConfig, err)
	}
	return PlanFile{Debts: entries}.Inputs(), nil
}

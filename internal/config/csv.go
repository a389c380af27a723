package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/snowball/internal/model"
)

// ErrInvalidCSV is returned when a debts CSV cannot be used.
var ErrInvalidCSV = errors.New("invalid debts CSV")

var csvColumns = []string{"creditor", "balance", "limit", "min_payment"}

// ParseDebtsCSV reads debts from CSV with a creditor,balance,limit,min_payment
// header. Columns may appear in any order; every bad row is reported.
func ParseDebtsCSV(r io.Reader) ([]model.DebtInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return []model.DebtInput{}, nil
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	debts := make([]model.DebtInput, 0, len(records)-1)
	var errs []error
	for i, record := range records[1:] {
		rowNum := i + 2
		in, err := rowToInput(record, index)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}
		debts = append(debts, in)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, errors.Join(errs...))
	}

	return debts, nil
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, col)
		}
	}
	return index, nil
}

func rowToInput(record []string, index map[string]int) (model.DebtInput, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	amounts := make(map[string]decimal.Decimal, 3)
	for _, col := range csvColumns[1:] {
		raw := strings.ReplaceAll(strings.TrimPrefix(field(col), "$"), ",", "")
		if raw == "" {
			amounts[col] = decimal.Zero
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return model.DebtInput{}, fmt.Errorf("invalid %s %q", col, field(col))
		}
		amounts[col] = v
	}

	return model.DebtInput{
		Creditor:   field("creditor"),
		Balance:    amounts["balance"],
		Limit:      amounts["limit"],
		MinPayment: amounts["min_payment"],
	}, nil
}

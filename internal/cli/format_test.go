package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "0", want: "$0.00"},
		{input: "12.5", want: "$12.50"},
		{input: "1200", want: "$1,200.00"},
		{input: "1234567.891", want: "$1,234,567.89"},
		{input: "-45.1", want: "-$45.10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "10.00%", FormatPercentage(decimal.NewFromInt(10)))
	assert.Equal(t, "33.33%", FormatPercentage(decimal.RequireFromString("33.3333")))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

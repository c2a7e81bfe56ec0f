package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPayoutPercentage(t *testing.T) {
	cases := []struct {
		name       string
		earnings   int64
		deductions int64
		want       string
	}{
		{"no deductions", 10000, 0, "100"},
		{"spec example", 6500, 300, "95.4"},
		{"half deducted", 10000, 5000, "50"},
		{"over-deducted goes negative", 1000, 1500, "-50"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PayoutPercentage(decimal.NewFromInt(c.earnings), decimal.NewFromInt(c.deductions))
			assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "got %s, want %s", got, c.want)
		})
	}
}

func TestPayoutPercentage_ZeroEarnings(t *testing.T) {
	got := PayoutPercentage(decimal.Zero, decimal.NewFromInt(300))
	assert.True(t, got.IsZero())
}

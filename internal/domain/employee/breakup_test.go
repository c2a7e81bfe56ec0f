package employee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStandardBreakup_KnownSplit(t *testing.T) {
	got := StandardBreakup(decimal.NewFromInt(12000))

	assert.True(t, got.Basic.Equal(decimal.NewFromInt(4800)), "basic = %s", got.Basic)
	assert.True(t, got.Housing.Equal(decimal.NewFromInt(2400)), "housing = %s", got.Housing)
	assert.True(t, got.Dearness.Equal(decimal.NewFromInt(1200)), "dearness = %s", got.Dearness)
	assert.True(t, got.Travel.Equal(decimal.NewFromInt(600)), "travel = %s", got.Travel)
	assert.True(t, got.Special.Equal(decimal.NewFromInt(3000)), "special = %s", got.Special)
}

func TestStandardBreakup_ComponentsSumToTotal(t *testing.T) {
	totals := []int64{0, 1, 3, 7, 13, 99, 101, 999, 1000, 12345, 54321, 100001, 7777777}
	for _, n := range totals {
		total := decimal.NewFromInt(n)
		got := StandardBreakup(total)

		sum := got.Basic.Add(got.Housing).Add(got.Dearness).Add(got.Travel).Add(got.Special)
		assert.True(t, sum.Equal(total), "breakup of %d sums to %s", n, sum)
	}
}

func TestStandardBreakup_FractionalTotal(t *testing.T) {
	// Non-integer totals still sum exactly: the fraction lands in special.
	total := decimal.NewFromFloat(10000.50)
	got := StandardBreakup(total)

	sum := got.Basic.Add(got.Housing).Add(got.Dearness).Add(got.Travel).Add(got.Special)
	assert.True(t, sum.Equal(total), "sum = %s", sum)
	assert.True(t, got.Basic.Equal(decimal.NewFromInt(4000)), "basic = %s", got.Basic)
}

func TestStandardBreakup_Zero(t *testing.T) {
	got := StandardBreakup(decimal.Zero)
	for _, c := range []decimal.Decimal{got.Basic, got.Housing, got.Dearness, got.Travel, got.Special} {
		assert.True(t, c.IsZero())
	}
}

func TestComponentSum(t *testing.T) {
	e := Employee{
		Basic:             decimal.NewFromInt(4000),
		HousingAllowance:  decimal.NewFromInt(2000),
		DearnessAllowance: decimal.NewFromInt(1000),
		TravelAllowance:   decimal.NewFromInt(500),
		SpecialAllowance:  decimal.NewFromInt(1500),
	}
	allowances := []VariableAllowance{
		{Label: "Internet Allowance", Amount: decimal.NewFromInt(300)},
		{Label: "Gym", Amount: decimal.NewFromInt(200)},
	}

	assert.True(t, ComponentSum(e, allowances).Equal(decimal.NewFromInt(9500)))
	assert.True(t, ComponentSum(e, nil).Equal(decimal.NewFromInt(9000)))
}

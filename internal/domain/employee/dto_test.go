package employee

import (
	"testing"

	"github.com/employeehub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	valid := CreateEmployeeRequest{
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		Role:              "Engineer",
		TotalCompensation: decimal.NewFromInt(10000),
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.TotalCompensation = decimal.NewFromInt(-1)
	err := negative.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "total_compensation")

	empty := CreateEmployeeRequest{}
	err = empty.Validate()
	require.Error(t, err)
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "name")
	assert.Contains(t, errs.ToMap(), "email")
	assert.Contains(t, errs.ToMap(), "role")
}

func TestUpdateCompositionRequest_Validate_TaggedVariant(t *testing.T) {
	topDown := UpdateCompositionRequest{TotalCompensation: dec(15000)}
	assert.NoError(t, topDown.Validate())
	assert.True(t, topDown.IsTopDown())

	bottomUp := UpdateCompositionRequest{Components: &ComponentOverrides{Basic: dec(5000)}}
	assert.NoError(t, bottomUp.Validate())
	assert.False(t, bottomUp.IsTopDown())

	both := UpdateCompositionRequest{
		TotalCompensation: dec(15000),
		Components:        &ComponentOverrides{Basic: dec(5000)},
	}
	assert.Error(t, both.Validate())

	neither := UpdateCompositionRequest{}
	assert.Error(t, neither.Validate())

	emptyOverrides := UpdateCompositionRequest{Components: &ComponentOverrides{}}
	assert.Error(t, emptyOverrides.Validate())
}

func TestUpdateCompositionRequest_Validate_NegativeAmounts(t *testing.T) {
	topDown := UpdateCompositionRequest{TotalCompensation: dec(-100)}
	assert.Error(t, topDown.Validate())

	bottomUp := UpdateCompositionRequest{Components: &ComponentOverrides{Travel: dec(-1)}}
	assert.Error(t, bottomUp.Validate())
}

func TestAddAllowanceRequest_Validate(t *testing.T) {
	valid := AddAllowanceRequest{Label: "Internet Allowance", Amount: decimal.NewFromInt(500)}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&AddAllowanceRequest{Label: "", Amount: decimal.NewFromInt(1)}).Validate())
	assert.Error(t, (&AddAllowanceRequest{Label: "x", Amount: decimal.NewFromInt(-1)}).Validate())
}

func TestNeedsHealing(t *testing.T) {
	legacy := Employee{TotalCompensation: decimal.NewFromInt(12000)}
	assert.True(t, legacy.NeedsHealing())

	healed := StandardBreakup(decimal.NewFromInt(12000))
	assert.False(t, Employee{
		TotalCompensation: healed.Total,
		Basic:             healed.Basic,
	}.NeedsHealing())

	zero := Employee{}
	assert.False(t, zero.NeedsHealing())
}

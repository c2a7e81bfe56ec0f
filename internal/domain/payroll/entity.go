package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionStatus enum
type DeductionStatus string

const (
	DeductionStatusPending DeductionStatus = "pending"
	DeductionStatusApplied DeductionStatus = "applied"
)

// Deduction is a dated one-off amount subtracted from a crediting event.
// Pending deductions are mutable; applied ones are locked into a payroll
// record and refuse deletion.
type Deduction struct {
	ID         string
	EmployeeID string
	Reason     string
	Amount     decimal.Decimal
	Month      int
	Year       int
	Status     DeductionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PayrollRecordStatus is a display label; "credited" is terminal and the
// only value the engine writes.
const PayrollRecordStatusCredited = "credited"

// PayrollRecord is the immutable result of crediting one period for one
// employee. At most one record exists per (employee, month, year).
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	Month           int
	Year            int
	GrossAmount     decimal.Decimal
	DeductionAmount decimal.Decimal
	NetAmount       decimal.Decimal
	Status          string
	CreditedAt      time.Time
}

// PayoutPercentage is round(((earnings - deductions) / earnings) * 100, 1).
// Zero earnings yields zero rather than a division error.
func PayoutPercentage(earnings, deductions decimal.Decimal) decimal.Decimal {
	if earnings.IsZero() {
		return decimal.Zero
	}
	return earnings.Sub(deductions).
		Div(earnings).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}

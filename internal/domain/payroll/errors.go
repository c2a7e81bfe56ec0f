package payroll

import "errors"

var (
	ErrDeductionNotFound       = errors.New("deduction not found")
	ErrDeductionAlreadyApplied = errors.New("deduction already applied, cannot delete")
	ErrPeriodAlreadyCredited   = errors.New("salary already credited for this period")
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
)

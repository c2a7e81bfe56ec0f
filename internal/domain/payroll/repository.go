package payroll

import "context"

// PayrollRepository defines data access for deductions and payroll records.
type PayrollRepository interface {
	// Deductions
	CreateDeduction(ctx context.Context, deduction Deduction) (Deduction, error)
	GetDeductionByID(ctx context.Context, id string) (Deduction, error)
	GetDeductionsByEmployeeID(ctx context.Context, employeeID string) ([]Deduction, error)
	// GetPendingDeductionsForPeriod returns pending deductions scoped to the
	// exact (month, year), locked for the surrounding transaction.
	GetPendingDeductionsForPeriod(ctx context.Context, employeeID string, month, year int) ([]Deduction, error)
	MarkDeductionsApplied(ctx context.Context, ids []string) error
	DeleteDeduction(ctx context.Context, id string) error

	// Payroll records
	// CreatePayrollRecord maps a (employee, month, year) unique violation to
	// ErrPeriodAlreadyCredited; the constraint is the idempotence authority.
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	GetRecordsByEmployeeID(ctx context.Context, employeeID string) ([]PayrollRecord, error)
}

package payroll

import "context"

// PayrollService defines the deduction tracker and the crediting engine.
type PayrollService interface {
	AddDeduction(ctx context.Context, employeeRef string, req AddDeductionRequest) (DeductionResponse, error)
	ListDeductions(ctx context.Context, employeeRef string) ([]DeductionResponse, error)
	// DeleteDeduction refuses applied deductions; corrections while pending
	// are delete-and-recreate.
	DeleteDeduction(ctx context.Context, employeeRef string, deductionID string) error

	// CreditSalary finalizes one period: at most one record per
	// (employee, month, year), net = gross - pending deductions, which flip
	// to applied in the same transaction.
	CreditSalary(ctx context.Context, employeeRef string, req CreditSalaryRequest) (PayrollRecordResponse, error)
	GetPayrollHistory(ctx context.Context, employeeRef string) ([]PayrollRecordResponse, error)

	GetProjection(ctx context.Context, employeeRef string, month, year int) (ProjectionResponse, error)

	// SendPayslip re-sends the payslip email for an already credited period.
	SendPayslip(ctx context.Context, employeeRef string, month, year int) error
}

package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	// GetByIDForUpdate locks the employee row for the duration of the
	// surrounding transaction. Composition mutations serialize on this lock.
	GetByIDForUpdate(ctx context.Context, id string) (Employee, error)
	UpdateCompensation(ctx context.Context, id string, comp Compensation) error
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	GetStats(ctx context.Context) (Stats, error)

	// Legacy identifier backfill
	ListIDsMissingCode(ctx context.Context) ([]string, error)
	SetCode(ctx context.Context, id string, code string) error

	// Variable allowances
	CreateAllowance(ctx context.Context, allowance VariableAllowance) (VariableAllowance, error)
	GetAllowanceByID(ctx context.Context, id string) (VariableAllowance, error)
	GetAllowancesByEmployeeID(ctx context.Context, employeeID string) ([]VariableAllowance, error)
	DeleteAllowance(ctx context.Context, id string) error

	// Salary history
	CreateHistoryEntry(ctx context.Context, entry SalaryHistoryEntry) (SalaryHistoryEntry, error)
	GetHistoryByEmployeeID(ctx context.Context, employeeID string) ([]SalaryHistoryEntry, error)

	SumAllowances(ctx context.Context, employeeID string) (decimal.Decimal, error)
}

package employee

import "context"

// EmployeeService defines business logic for employee and salary
// composition operations.
type EmployeeService interface {
	// Resolve maps an external employee code (or a legacy internal id) to
	// the employee record without triggering the self-heal path.
	Resolve(ctx context.Context, ref string) (Employee, error)

	// GetEmployee retrieves a single employee, healing legacy rows whose
	// breakdown columns were never populated.
	GetEmployee(ctx context.Context, ref string) (EmployeeResponse, error)

	// CreateEmployee creates an employee with the computed standard breakup
	// and the initial salary-history entry.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateProfile updates name/email/role/image only; compensation state
	// is untouched.
	UpdateProfile(ctx context.Context, ref string, req UpdateProfileRequest) (EmployeeResponse, error)

	// UpdateComposition applies a tagged top-down or bottom-up compensation
	// update.
	UpdateComposition(ctx context.Context, ref string, req UpdateCompositionRequest) (EmployeeResponse, error)

	AddAllowance(ctx context.Context, ref string, req AddAllowanceRequest) (EmployeeResponse, error)
	DeleteAllowance(ctx context.Context, ref string, allowanceID string) (EmployeeResponse, error)

	GetSalaryHistory(ctx context.Context, ref string) ([]SalaryHistoryResponse, error)

	DeleteEmployee(ctx context.Context, ref string) error
	ListEmployees(ctx context.Context, filter Filter) (ListEmployeeResponse, error)
	GetStats(ctx context.Context) (StatsResponse, error)

	// SeedEmployeeCodes assigns a fresh code to every employee lacking one.
	// Row-at-a-time: partial progress survives a failure and a rerun picks
	// up where it stopped.
	SeedEmployeeCodes(ctx context.Context) (SeedCodesResponse, error)
}

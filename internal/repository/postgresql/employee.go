package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, name, email, role, profile_image_url,
	total_compensation, basic, housing_allowance, dearness_allowance,
	travel_allowance, special_allowance, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.Name, &e.Email, &e.Role, &e.ProfileImageURL,
		&e.TotalCompensation, &e.Basic, &e.HousingAllowance, &e.DearnessAllowance,
		&e.TravelAllowance, &e.SpecialAllowance, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_code, name, email, role, profile_image_url,
			total_compensation, basic, housing_allowance, dearness_allowance,
			travel_allowance, special_allowance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.EmployeeCode, newEmployee.Name, newEmployee.Email, newEmployee.Role,
		newEmployee.ProfileImageURL, newEmployee.TotalCompensation, newEmployee.Basic,
		newEmployee.HousingAllowance, newEmployee.DearnessAllowance,
		newEmployee.TravelAllowance, newEmployee.SpecialAllowance,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uq_employees_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 FOR UPDATE`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to lock employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) UpdateCompensation(ctx context.Context, id string, comp employee.Compensation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET total_compensation = $2,
			basic = $3,
			housing_allowance = $4,
			dearness_allowance = $5,
			travel_allowance = $6,
			special_allowance = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id,
		comp.Total, comp.Basic, comp.Housing, comp.Dearness, comp.Travel, comp.Special,
	)
	if err != nil {
		return fmt.Errorf("failed to update compensation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) UpdateProfile(ctx context.Context, id string, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	args = append(args, id)
	argIdx := 2

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Email != nil {
		sets = append(sets, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *req.Email)
		argIdx++
	}
	if req.Role != nil {
		sets = append(sets, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *req.Role)
		argIdx++
	}
	if req.ProfileImageURL != nil {
		sets = append(sets, fmt.Sprintf("profile_image_url = $%d", argIdx))
		args = append(args, *req.ProfileImageURL)
		argIdx++
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $1", strings.Join(sets, ", "))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "uq_employees_email") {
			return employee.ErrEmailExists
		}
		return fmt.Errorf("failed to update employee profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// Allowances, deductions, history and payroll records go with the row
	// via ON DELETE CASCADE.
	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"TRUE"}
	var args []interface{}
	argIdx := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR role ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees WHERE %s", whereClause)
	var totalCount int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, totalCount, rows.Err()
}

func (r *employeeRepository) GetStats(ctx context.Context) (employee.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(total_compensation), 0),
			   COALESCE(AVG(total_compensation), 0)
		FROM employees
	`

	var stats employee.Stats
	var avg decimal.Decimal
	if err := q.QueryRow(ctx, query).Scan(&stats.Count, &stats.TotalCompensationSum, &avg); err != nil {
		return employee.Stats{}, fmt.Errorf("failed to aggregate employee stats: %w", err)
	}
	stats.AverageCompensation = avg.Round(2)

	var name string
	err := q.QueryRow(ctx, `
		SELECT name FROM employees
		ORDER BY total_compensation DESC, created_at ASC
		LIMIT 1
	`).Scan(&name)
	if err != nil && err != pgx.ErrNoRows {
		return employee.Stats{}, fmt.Errorf("failed to get highest paid employee: %w", err)
	}
	if err == nil {
		stats.HighestPaidName = &name
	}

	return stats, nil
}

func (r *employeeRepository) ListIDsMissingCode(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM employees WHERE employee_code IS NULL ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees missing code: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *employeeRepository) SetCode(ctx context.Context, id string, code string) error {
	q := GetQuerier(ctx, r.db)

	// Guard keeps a rerun from overwriting already assigned codes.
	tag, err := q.Exec(ctx, `
		UPDATE employees SET employee_code = $2, updated_at = NOW()
		WHERE id = $1 AND employee_code IS NULL
	`, id, code)
	if err != nil {
		if strings.Contains(err.Error(), "uq_employees_employee_code") {
			return employee.ErrCodeExists
		}
		return fmt.Errorf("failed to set employee code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// ========== VARIABLE ALLOWANCES ==========

func (r *employeeRepository) CreateAllowance(ctx context.Context, allowance employee.VariableAllowance) (employee.VariableAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO variable_allowances (employee_id, label, amount)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, label, amount, created_at
	`

	var a employee.VariableAllowance
	err := q.QueryRow(ctx, query, allowance.EmployeeID, allowance.Label, allowance.Amount).Scan(
		&a.ID, &a.EmployeeID, &a.Label, &a.Amount, &a.CreatedAt,
	)
	if err != nil {
		return employee.VariableAllowance{}, fmt.Errorf("failed to create allowance: %w", err)
	}

	return a, nil
}

func (r *employeeRepository) GetAllowanceByID(ctx context.Context, id string) (employee.VariableAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, employee_id, label, amount, created_at FROM variable_allowances WHERE id = $1`

	var a employee.VariableAllowance
	err := q.QueryRow(ctx, query, id).Scan(&a.ID, &a.EmployeeID, &a.Label, &a.Amount, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.VariableAllowance{}, employee.ErrAllowanceNotFound
		}
		return employee.VariableAllowance{}, fmt.Errorf("failed to get allowance: %w", err)
	}

	return a, nil
}

func (r *employeeRepository) GetAllowancesByEmployeeID(ctx context.Context, employeeID string) ([]employee.VariableAllowance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, label, amount, created_at
		FROM variable_allowances
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowances: %w", err)
	}
	defer rows.Close()

	var allowances []employee.VariableAllowance
	for rows.Next() {
		var a employee.VariableAllowance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Label, &a.Amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allowance: %w", err)
		}
		allowances = append(allowances, a)
	}

	return allowances, rows.Err()
}

func (r *employeeRepository) DeleteAllowance(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM variable_allowances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete allowance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrAllowanceNotFound
	}

	return nil
}

func (r *employeeRepository) SumAllowances(ctx context.Context, employeeID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM variable_allowances WHERE employee_id = $1
	`, employeeID).Scan(&sum)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to sum allowances: %w", err)
	}

	return sum, nil
}

// ========== SALARY HISTORY ==========

func (r *employeeRepository) CreateHistoryEntry(ctx context.Context, entry employee.SalaryHistoryEntry) (employee.SalaryHistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_histories (employee_id, previous_total, new_total)
		VALUES ($1, $2, $3)
		RETURNING id, employee_id, previous_total, new_total, recorded_at
	`

	var h employee.SalaryHistoryEntry
	err := q.QueryRow(ctx, query, entry.EmployeeID, entry.PreviousTotal, entry.NewTotal).Scan(
		&h.ID, &h.EmployeeID, &h.PreviousTotal, &h.NewTotal, &h.RecordedAt,
	)
	if err != nil {
		return employee.SalaryHistoryEntry{}, fmt.Errorf("failed to create history entry: %w", err)
	}

	return h, nil
}

func (r *employeeRepository) GetHistoryByEmployeeID(ctx context.Context, employeeID string) ([]employee.SalaryHistoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, previous_total, new_total, recorded_at
		FROM salary_histories
		WHERE employee_id = $1
		ORDER BY recorded_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary history: %w", err)
	}
	defer rows.Close()

	var entries []employee.SalaryHistoryEntry
	for rows.Next() {
		var h employee.SalaryHistoryEntry
		if err := rows.Scan(&h.ID, &h.EmployeeID, &h.PreviousTotal, &h.NewTotal, &h.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}

	return entries, rows.Err()
}

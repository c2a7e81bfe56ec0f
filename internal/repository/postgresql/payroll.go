package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/employeehub/payroll-backend-go/internal/domain/payroll"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== DEDUCTIONS ==========

func (r *payrollRepository) CreateDeduction(ctx context.Context, deduction payroll.Deduction) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deductions (employee_id, reason, amount, month, year, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, reason, amount, month, year, status, created_at, updated_at
	`

	var d payroll.Deduction
	err := q.QueryRow(ctx, query,
		deduction.EmployeeID, deduction.Reason, deduction.Amount,
		deduction.Month, deduction.Year, deduction.Status,
	).Scan(
		&d.ID, &d.EmployeeID, &d.Reason, &d.Amount, &d.Month, &d.Year,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return payroll.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) GetDeductionByID(ctx context.Context, id string) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, reason, amount, month, year, status, created_at, updated_at
		FROM deductions
		WHERE id = $1
	`

	var d payroll.Deduction
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.EmployeeID, &d.Reason, &d.Amount, &d.Month, &d.Year,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Deduction{}, payroll.ErrDeductionNotFound
		}
		return payroll.Deduction{}, fmt.Errorf("failed to get deduction: %w", err)
	}

	return d, nil
}

func (r *payrollRepository) GetDeductionsByEmployeeID(ctx context.Context, employeeID string) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, reason, amount, month, year, status, created_at, updated_at
		FROM deductions
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`

	return r.queryDeductions(ctx, q, query, employeeID)
}

func (r *payrollRepository) GetPendingDeductionsForPeriod(ctx context.Context, employeeID string, month, year int) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	// FOR UPDATE keeps a concurrent delete from racing the applied flip.
	query := `
		SELECT id, employee_id, reason, amount, month, year, status, created_at, updated_at
		FROM deductions
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND status = 'pending'
		ORDER BY created_at ASC
		FOR UPDATE
	`

	return r.queryDeductions(ctx, q, query, employeeID, month, year)
}

func (r *payrollRepository) queryDeductions(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]payroll.Deduction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.Deduction
	for rows.Next() {
		var d payroll.Deduction
		if err := rows.Scan(
			&d.ID, &d.EmployeeID, &d.Reason, &d.Amount, &d.Month, &d.Year,
			&d.Status, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}

	return deductions, rows.Err()
}

func (r *payrollRepository) MarkDeductionsApplied(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE deductions SET status = 'applied', updated_at = NOW()
		WHERE id = ANY($1) AND status = 'pending'
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to mark deductions applied: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeleteDeduction(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deductions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDeductionNotFound
	}

	return nil
}

// ========== PAYROLL RECORDS ==========

func (r *payrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (employee_id, month, year, gross_amount, deduction_amount, net_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, month, year, gross_amount, deduction_amount, net_amount, status, credited_at
	`

	var p payroll.PayrollRecord
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year,
		record.GrossAmount, record.DeductionAmount, record.NetAmount, record.Status,
	).Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.GrossAmount, &p.DeductionAmount, &p.NetAmount, &p.Status, &p.CreditedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_records_employee_period" {
			return payroll.PayrollRecord{}, payroll.ErrPeriodAlreadyCredited
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, gross_amount, deduction_amount, net_amount, status, credited_at
		FROM payroll_records
		WHERE employee_id = $1 AND month = $2 AND year = $3
	`

	var p payroll.PayrollRecord
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year,
		&p.GrossAmount, &p.DeductionAmount, &p.NetAmount, &p.Status, &p.CreditedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetRecordsByEmployeeID(ctx context.Context, employeeID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, month, year, gross_amount, deduction_amount, net_amount, status, credited_at
		FROM payroll_records
		WHERE employee_id = $1
		ORDER BY year DESC, month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var p payroll.PayrollRecord
		if err := rows.Scan(
			&p.ID, &p.EmployeeID, &p.Month, &p.Year,
			&p.GrossAmount, &p.DeductionAmount, &p.NetAmount, &p.Status, &p.CreditedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}

	return records, rows.Err()
}

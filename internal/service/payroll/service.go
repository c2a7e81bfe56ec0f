package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/domain/payroll"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/pkg/email"
	"github.com/employeehub/payroll-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	employees    employee.EmployeeService
	emailService email.EmailService
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	employees employee.EmployeeService,
	emailService email.EmailService,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		employees:    employees,
		emailService: emailService,
	}
}

// ========== DEDUCTIONS ==========

func (s *PayrollServiceImpl) AddDeduction(ctx context.Context, employeeRef string, req payroll.AddDeductionRequest) (payroll.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DeductionResponse{}, err
	}

	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return payroll.DeductionResponse{}, err
	}

	created, err := s.payrollRepo.CreateDeduction(ctx, payroll.Deduction{
		EmployeeID: e.ID,
		Reason:     req.Reason,
		Amount:     req.Amount,
		Month:      req.Month,
		Year:       req.Year,
		Status:     payroll.DeductionStatusPending,
	})
	if err != nil {
		return payroll.DeductionResponse{}, err
	}

	return toDeductionResponse(created), nil
}

func (s *PayrollServiceImpl) ListDeductions(ctx context.Context, employeeRef string) ([]payroll.DeductionResponse, error) {
	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return nil, err
	}

	deductions, err := s.payrollRepo.GetDeductionsByEmployeeID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.DeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		result = append(result, toDeductionResponse(d))
	}

	return result, nil
}

func (s *PayrollServiceImpl) DeleteDeduction(ctx context.Context, employeeRef string, deductionID string) error {
	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return err
	}

	deduction, err := s.payrollRepo.GetDeductionByID(ctx, deductionID)
	if err != nil {
		return err
	}
	if deduction.EmployeeID != e.ID {
		return payroll.ErrDeductionNotFound
	}

	// Applied deductions are part of a credited payroll record and stay.
	if deduction.Status == payroll.DeductionStatusApplied {
		return payroll.ErrDeductionAlreadyApplied
	}

	return s.payrollRepo.DeleteDeduction(ctx, deductionID)
}

// ========== CREDITING ==========

func (s *PayrollServiceImpl) CreditSalary(ctx context.Context, employeeRef string, req payroll.CreditSalaryRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var record payroll.PayrollRecord
	var recipient employee.Employee

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		locked, err := s.employeeRepo.GetByIDForUpdate(txCtx, e.ID)
		if err != nil {
			return err
		}
		recipient = locked

		// Advisory fast-fail; the unique constraint on the insert below is
		// what actually guarantees one record per period.
		_, err = s.payrollRepo.GetRecordByEmployeePeriod(txCtx, e.ID, req.Month, req.Year)
		if err == nil {
			return payroll.ErrPeriodAlreadyCredited
		}
		if !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return err
		}

		pending, err := s.payrollRepo.GetPendingDeductionsForPeriod(txCtx, e.ID, req.Month, req.Year)
		if err != nil {
			return err
		}

		deductionAmount := decimal.Zero
		ids := make([]string, 0, len(pending))
		for _, d := range pending {
			deductionAmount = deductionAmount.Add(d.Amount)
			ids = append(ids, d.ID)
		}

		gross := locked.TotalCompensation
		// Net is not clamped: deductions above gross surface as a negative
		// net for the operator to act on.
		net := gross.Sub(deductionAmount)

		record, err = s.payrollRepo.CreatePayrollRecord(txCtx, payroll.PayrollRecord{
			EmployeeID:      e.ID,
			Month:           req.Month,
			Year:            req.Year,
			GrossAmount:     gross,
			DeductionAmount: deductionAmount,
			NetAmount:       net,
			Status:          payroll.PayrollRecordStatusCredited,
		})
		if err != nil {
			return err
		}

		return s.payrollRepo.MarkDeductionsApplied(txCtx, ids)
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	// Fire-and-forget: the credit is committed whether or not the payslip
	// mail goes out.
	go s.dispatchPayslip(recipient, record)

	return toRecordResponse(record), nil
}

func (s *PayrollServiceImpl) dispatchPayslip(e employee.Employee, record payroll.PayrollRecord) {
	err := s.emailService.SendPayslip(e.Email, email.PayslipData{
		EmployeeName:    e.Name,
		Month:           time.Month(record.Month),
		Year:            record.Year,
		GrossAmount:     record.GrossAmount,
		DeductionAmount: record.DeductionAmount,
		NetAmount:       record.NetAmount,
		CreditedAt:      record.CreditedAt,
	})
	if err != nil {
		slog.Error("Failed to send payslip email", "employee_id", e.ID, "month", record.Month, "year", record.Year, "error", err)
	}
}

func (s *PayrollServiceImpl) GetPayrollHistory(ctx context.Context, employeeRef string) ([]payroll.PayrollRecordResponse, error) {
	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.GetRecordsByEmployeeID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, toRecordResponse(r))
	}

	return result, nil
}

// ========== PROJECTION ==========

func (s *PayrollServiceImpl) GetProjection(ctx context.Context, employeeRef string, month, year int) (payroll.ProjectionResponse, error) {
	if err := payroll.ValidatePeriod(month, year); err != nil {
		return payroll.ProjectionResponse{}, err
	}

	// The healing read path, so legacy rows project from a populated
	// breakdown.
	emp, err := s.employees.GetEmployee(ctx, employeeRef)
	if err != nil {
		return payroll.ProjectionResponse{}, err
	}

	pending, err := s.payrollRepo.GetPendingDeductionsForPeriod(ctx, emp.ID, month, year)
	if err != nil {
		return payroll.ProjectionResponse{}, err
	}

	earnings := make([]payroll.ProjectionLineItem, 0, 5+len(emp.Allowances))
	for _, item := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Basic", emp.Basic},
		{"Housing Allowance", emp.HousingAllowance},
		{"Dearness Allowance", emp.DearnessAllowance},
		{"Travel Allowance", emp.TravelAllowance},
		{"Special Allowance", emp.SpecialAllowance},
	} {
		if !item.amount.IsZero() {
			earnings = append(earnings, payroll.ProjectionLineItem{Label: item.label, Amount: item.amount})
		}
	}
	for _, a := range emp.Allowances {
		earnings = append(earnings, payroll.ProjectionLineItem{Label: a.Label, Amount: a.Amount})
	}

	totalDeductions := decimal.Zero
	deductions := make([]payroll.ProjectionLineItem, 0, len(pending))
	for _, d := range pending {
		totalDeductions = totalDeductions.Add(d.Amount)
		deductions = append(deductions, payroll.ProjectionLineItem{Label: d.Reason, Amount: d.Amount})
	}

	totalEarnings := emp.TotalCompensation
	netPay := totalEarnings.Sub(totalDeductions)

	return payroll.ProjectionResponse{
		Month:      month,
		Year:       year,
		Earnings:   earnings,
		Deductions: deductions,
		Summary: payroll.ProjectionSummary{
			TotalEarnings:    totalEarnings,
			TotalDeductions:  totalDeductions,
			NetPay:           netPay,
			PayoutPercentage: payroll.PayoutPercentage(totalEarnings, totalDeductions),
		},
	}, nil
}

// ========== PAYSLIP ==========

func (s *PayrollServiceImpl) SendPayslip(ctx context.Context, employeeRef string, month, year int) error {
	if err := payroll.ValidatePeriod(month, year); err != nil {
		return err
	}

	e, err := s.employees.Resolve(ctx, employeeRef)
	if err != nil {
		return err
	}

	record, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, e.ID, month, year)
	if err != nil {
		return err
	}

	return s.emailService.SendPayslip(e.Email, email.PayslipData{
		EmployeeName:    e.Name,
		Month:           time.Month(record.Month),
		Year:            record.Year,
		GrossAmount:     record.GrossAmount,
		DeductionAmount: record.DeductionAmount,
		NetAmount:       record.NetAmount,
		CreditedAt:      record.CreditedAt,
	})
}

// ========== HELPERS ==========

func toDeductionResponse(d payroll.Deduction) payroll.DeductionResponse {
	return payroll.DeductionResponse{
		ID:        d.ID,
		Reason:    d.Reason,
		Amount:    d.Amount,
		Month:     d.Month,
		Year:      d.Year,
		Status:    string(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func toRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	return payroll.PayrollRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		Month:           r.Month,
		Year:            r.Year,
		GrossAmount:     r.GrossAmount,
		DeductionAmount: r.DeductionAmount,
		NetAmount:       r.NetAmount,
		Status:          r.Status,
		CreditedAt:      r.CreditedAt,
	}
}

package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/pkg/validator"
	"github.com/employeehub/payroll-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

// Resolve looks the employee up by external code first. Rows created before
// the code column existed have no code yet and stay addressable by internal
// id until the seed-codes backfill runs.
func (s *EmployeeServiceImpl) Resolve(ctx context.Context, ref string) (employee.Employee, error) {
	if !validator.IsValidUUID(ref) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	e, err := s.employeeRepo.GetByCode(ctx, ref)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.Employee{}, err
	}

	return s.employeeRepo.GetByID(ctx, ref)
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, ref string) (employee.EmployeeResponse, error) {
	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if e.NeedsHealing() {
		healed, err := s.healBreakdown(ctx, e.ID)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		e = healed
	}

	return s.buildResponse(ctx, e)
}

// healBreakdown backfills the standard components of a row that predates
// the breakdown columns, using the stored total as input. Runs the top-down
// protocol once under the row lock; a concurrent heal short-circuits on the
// re-check.
func (s *EmployeeServiceImpl) healBreakdown(ctx context.Context, id string) (employee.Employee, error) {
	var healed employee.Employee

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		locked, err := s.employeeRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if !locked.NeedsHealing() {
			healed = locked
			return nil
		}

		comp := employee.StandardBreakup(locked.TotalCompensation)
		if err := s.employeeRepo.UpdateCompensation(txCtx, id, comp); err != nil {
			return fmt.Errorf("failed to heal breakdown: %w", err)
		}

		healed = applyCompensation(locked, comp)
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Healed legacy salary breakdown", "employee_id", id)
	return healed, nil
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	comp := employee.StandardBreakup(req.TotalCompensation)
	code := uuid.NewString()

	newEmployee := employee.Employee{
		EmployeeCode:      &code,
		Name:              req.Name,
		Email:             req.Email,
		Role:              req.Role,
		ProfileImageURL:   req.ProfileImageURL,
		TotalCompensation: comp.Total,
		Basic:             comp.Basic,
		HousingAllowance:  comp.Housing,
		DearnessAllowance: comp.Dearness,
		TravelAllowance:   comp.Travel,
		SpecialAllowance:  comp.Special,
	}

	var created employee.Employee
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}

		// Creation is the 0 -> initial transition.
		_, err = s.employeeRepo.CreateHistoryEntry(txCtx, employee.SalaryHistoryEntry{
			EmployeeID:    created.ID,
			PreviousTotal: decimal.Zero,
			NewTotal:      created.TotalCompensation,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created, nil), nil
}

func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, ref string, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.UpdateProfile(ctx, e.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, e.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.buildResponse(ctx, updated)
}

func (s *EmployeeServiceImpl) UpdateComposition(ctx context.Context, ref string, req employee.UpdateCompositionRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		locked, err := s.employeeRepo.GetByIDForUpdate(txCtx, e.ID)
		if err != nil {
			return err
		}

		if req.IsTopDown() {
			comp := employee.StandardBreakup(*req.TotalCompensation)
			if err := s.employeeRepo.UpdateCompensation(txCtx, e.ID, comp); err != nil {
				return err
			}
			if !comp.Total.Equal(locked.TotalCompensation) {
				if _, err := s.employeeRepo.CreateHistoryEntry(txCtx, employee.SalaryHistoryEntry{
					EmployeeID:    e.ID,
					PreviousTotal: locked.TotalCompensation,
					NewTotal:      comp.Total,
				}); err != nil {
					return err
				}
			}
			updated = applyCompensation(locked, comp)
			return nil
		}

		// Bottom-up: overrides are ground truth, the total is derived.
		// This path leaves no salary-history entry.
		applyOverrides(&locked, req.Components)
		comp, err := s.recomputeTotal(txCtx, locked)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.UpdateCompensation(txCtx, e.ID, comp); err != nil {
			return err
		}
		updated = applyCompensation(locked, comp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.buildResponse(ctx, updated)
}

func (s *EmployeeServiceImpl) AddAllowance(ctx context.Context, ref string, req employee.AddAllowanceRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		locked, err := s.employeeRepo.GetByIDForUpdate(txCtx, e.ID)
		if err != nil {
			return err
		}

		if _, err := s.employeeRepo.CreateAllowance(txCtx, employee.VariableAllowance{
			EmployeeID: e.ID,
			Label:      req.Label,
			Amount:     req.Amount,
		}); err != nil {
			return err
		}

		comp, err := s.recomputeTotal(txCtx, locked)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.UpdateCompensation(txCtx, e.ID, comp); err != nil {
			return err
		}
		updated = applyCompensation(locked, comp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.buildResponse(ctx, updated)
}

func (s *EmployeeServiceImpl) DeleteAllowance(ctx context.Context, ref string, allowanceID string) (employee.EmployeeResponse, error) {
	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		locked, err := s.employeeRepo.GetByIDForUpdate(txCtx, e.ID)
		if err != nil {
			return err
		}

		allowance, err := s.employeeRepo.GetAllowanceByID(txCtx, allowanceID)
		if err != nil {
			return err
		}
		if allowance.EmployeeID != e.ID {
			return employee.ErrAllowanceNotFound
		}

		if err := s.employeeRepo.DeleteAllowance(txCtx, allowanceID); err != nil {
			return err
		}

		comp, err := s.recomputeTotal(txCtx, locked)
		if err != nil {
			return err
		}
		if err := s.employeeRepo.UpdateCompensation(txCtx, e.ID, comp); err != nil {
			return err
		}
		updated = applyCompensation(locked, comp)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.buildResponse(ctx, updated)
}

// recomputeTotal derives the total from the component state: standard
// components plus the persisted allowance rows. Must run inside the same
// transaction as the mutation that made the recompute necessary.
func (s *EmployeeServiceImpl) recomputeTotal(ctx context.Context, e employee.Employee) (employee.Compensation, error) {
	allowanceSum, err := s.employeeRepo.SumAllowances(ctx, e.ID)
	if err != nil {
		return employee.Compensation{}, err
	}

	total := employee.ComponentSum(e, nil).Add(allowanceSum)
	return employee.Compensation{
		Total:    total,
		Basic:    e.Basic,
		Housing:  e.HousingAllowance,
		Dearness: e.DearnessAllowance,
		Travel:   e.TravelAllowance,
		Special:  e.SpecialAllowance,
	}, nil
}

func (s *EmployeeServiceImpl) GetSalaryHistory(ctx context.Context, ref string) ([]employee.SalaryHistoryResponse, error) {
	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	entries, err := s.employeeRepo.GetHistoryByEmployeeID(ctx, e.ID)
	if err != nil {
		return nil, err
	}

	result := make([]employee.SalaryHistoryResponse, 0, len(entries))
	for _, h := range entries {
		result = append(result, employee.SalaryHistoryResponse{
			ID:            h.ID,
			PreviousTotal: h.PreviousTotal,
			NewTotal:      h.NewTotal,
			RecordedAt:    h.RecordedAt,
		})
	}

	return result, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, ref string) error {
	e, err := s.Resolve(ctx, ref)
	if err != nil {
		return err
	}

	return s.employeeRepo.Delete(ctx, e.ID)
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.Filter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 5
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		data = append(data, toResponse(e, nil))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *EmployeeServiceImpl) GetStats(ctx context.Context) (employee.StatsResponse, error) {
	stats, err := s.employeeRepo.GetStats(ctx)
	if err != nil {
		return employee.StatsResponse{}, err
	}

	return employee.StatsResponse{
		Count:                stats.Count,
		TotalCompensationSum: stats.TotalCompensationSum,
		AverageCompensation:  stats.AverageCompensation,
		HighestPaidName:      stats.HighestPaidName,
	}, nil
}

func (s *EmployeeServiceImpl) SeedEmployeeCodes(ctx context.Context) (employee.SeedCodesResponse, error) {
	ids, err := s.employeeRepo.ListIDsMissingCode(ctx)
	if err != nil {
		return employee.SeedCodesResponse{}, err
	}

	// Row-at-a-time on purpose: a failure keeps the already assigned codes
	// and a rerun only touches the remainder.
	assigned := 0
	for _, id := range ids {
		if err := s.employeeRepo.SetCode(ctx, id, uuid.NewString()); err != nil {
			return employee.SeedCodesResponse{Assigned: assigned}, fmt.Errorf("failed to assign code to employee %s: %w", id, err)
		}
		assigned++
	}

	if assigned > 0 {
		slog.Info("Assigned employee codes to legacy rows", "count", assigned)
	}
	return employee.SeedCodesResponse{Assigned: assigned}, nil
}

// ========== HELPERS ==========

func (s *EmployeeServiceImpl) buildResponse(ctx context.Context, e employee.Employee) (employee.EmployeeResponse, error) {
	allowances, err := s.employeeRepo.GetAllowancesByEmployeeID(ctx, e.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(e, allowances), nil
}

func applyCompensation(e employee.Employee, comp employee.Compensation) employee.Employee {
	e.TotalCompensation = comp.Total
	e.Basic = comp.Basic
	e.HousingAllowance = comp.Housing
	e.DearnessAllowance = comp.Dearness
	e.TravelAllowance = comp.Travel
	e.SpecialAllowance = comp.Special
	return e
}

func applyOverrides(e *employee.Employee, o *employee.ComponentOverrides) {
	if o.Basic != nil {
		e.Basic = *o.Basic
	}
	if o.Housing != nil {
		e.HousingAllowance = *o.Housing
	}
	if o.Dearness != nil {
		e.DearnessAllowance = *o.Dearness
	}
	if o.Travel != nil {
		e.TravelAllowance = *o.Travel
	}
	if o.Special != nil {
		e.SpecialAllowance = *o.Special
	}
}

func toResponse(e employee.Employee, allowances []employee.VariableAllowance) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                e.ID,
		EmployeeCode:      e.EmployeeCode,
		Name:              e.Name,
		Email:             e.Email,
		Role:              e.Role,
		ProfileImageURL:   e.ProfileImageURL,
		TotalCompensation: e.TotalCompensation,
		Basic:             e.Basic,
		HousingAllowance:  e.HousingAllowance,
		DearnessAllowance: e.DearnessAllowance,
		TravelAllowance:   e.TravelAllowance,
		SpecialAllowance:  e.SpecialAllowance,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	for _, a := range allowances {
		resp.Allowances = append(resp.Allowances, employee.AllowanceResponse{
			ID:     a.ID,
			Label:  a.Label,
			Amount: a.Amount,
		})
	}
	return resp
}

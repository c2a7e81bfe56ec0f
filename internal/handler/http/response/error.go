package response

import (
	"errors"
	"net/http"

	"github.com/employeehub/payroll-backend-go/internal/domain/auth"
	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/domain/payroll"
	"github.com/employeehub/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrAllowanceNotFound):
		NotFound(w, "Allowance not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCodeExists):
		Conflict(w, "Employee code already assigned")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrDeductionNotFound):
		NotFound(w, "Deduction not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrDeductionAlreadyApplied):
		Conflict(w, "Deduction already applied, cannot delete")
	case errors.Is(err, payroll.ErrPeriodAlreadyCredited):
		Conflict(w, "Salary already credited for this period")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

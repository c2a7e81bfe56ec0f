package payroll

import (
	"time"

	"github.com/employeehub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AddDeductionRequest struct {
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
	Month  int             `json:"month"`
	Year   int             `json:"year"`
}

func (r *AddDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	errs = append(errs, validatePeriod(r.Month, r.Year)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreditSalaryRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *CreditSalaryRequest) Validate() error {
	if errs := validatePeriod(r.Month, r.Year); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePeriod checks a (month, year) pair supplied outside a request
// body, e.g. query parameters.
func ValidatePeriod(month, year int) error {
	if errs := validatePeriod(month, year); len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if !validator.IsValidMonth(month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if !validator.IsValidYear(year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be between 2000 and 2100"})
	}
	return errs
}

type DeductionResponse struct {
	ID        string          `json:"id"`
	Reason    string          `json:"reason"`
	Amount    decimal.Decimal `json:"amount"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type PayrollRecordResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	Status          string          `json:"status"`
	CreditedAt      time.Time       `json:"credited_at"`
}

// ProjectionLineItem is one row of an itemized earnings or deductions list.
type ProjectionLineItem struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type ProjectionSummary struct {
	TotalEarnings    decimal.Decimal `json:"total_earnings"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetPay           decimal.Decimal `json:"net_pay"`
	PayoutPercentage decimal.Decimal `json:"payout_percentage"`
}

// ProjectionResponse previews one period before crediting: what would be
// earned, what is pending to be deducted, and the resulting net.
type ProjectionResponse struct {
	Month      int                  `json:"month"`
	Year       int                  `json:"year"`
	Earnings   []ProjectionLineItem `json:"earnings"`
	Deductions []ProjectionLineItem `json:"deductions"`
	Summary    ProjectionSummary    `json:"summary"`
}

package employee

import (
	"time"

	"github.com/employeehub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Role              string          `json:"role"`
	TotalCompensation decimal.Decimal `json:"total_compensation"`
	ProfileImageURL   *string         `json:"profile_image_url,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "is required"})
	}
	if r.TotalCompensation.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_compensation", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Role            *string `json:"role,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Role != nil && validator.IsEmpty(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ComponentOverrides carries partial standard-component values for a
// bottom-up update. Unset fields keep their current value.
type ComponentOverrides struct {
	Basic    *decimal.Decimal `json:"basic,omitempty"`
	Housing  *decimal.Decimal `json:"housing_allowance,omitempty"`
	Dearness *decimal.Decimal `json:"dearness_allowance,omitempty"`
	Travel   *decimal.Decimal `json:"travel_allowance,omitempty"`
	Special  *decimal.Decimal `json:"special_allowance,omitempty"`
}

func (c *ComponentOverrides) isEmpty() bool {
	return c.Basic == nil && c.Housing == nil && c.Dearness == nil &&
		c.Travel == nil && c.Special == nil
}

// UpdateCompositionRequest is a tagged update: exactly one of
// TotalCompensation (top-down) or Components (bottom-up) must be set.
type UpdateCompositionRequest struct {
	TotalCompensation *decimal.Decimal    `json:"total_compensation,omitempty"`
	Components        *ComponentOverrides `json:"components,omitempty"`
}

// IsTopDown reports the selected protocol. Valid only after Validate.
func (r *UpdateCompositionRequest) IsTopDown() bool {
	return r.TotalCompensation != nil
}

func (r *UpdateCompositionRequest) Validate() error {
	var errs validator.ValidationErrors

	hasTotal := r.TotalCompensation != nil
	hasComponents := r.Components != nil && !r.Components.isEmpty()

	switch {
	case hasTotal && hasComponents:
		errs = append(errs, validator.ValidationError{Field: "total_compensation", Message: "cannot be combined with component overrides"})
	case !hasTotal && !hasComponents:
		errs = append(errs, validator.ValidationError{Field: "total_compensation", Message: "either total_compensation or components is required"})
	}

	if hasTotal && r.TotalCompensation.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_compensation", Message: "must be non-negative"})
	}
	if hasComponents {
		for field, v := range map[string]*decimal.Decimal{
			"components.basic":              r.Components.Basic,
			"components.housing_allowance":  r.Components.Housing,
			"components.dearness_allowance": r.Components.Dearness,
			"components.travel_allowance":   r.Components.Travel,
			"components.special_allowance":  r.Components.Special,
		} {
			if v != nil && v.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddAllowanceRequest struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *AddAllowanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "is required"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AllowanceResponse struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

type EmployeeResponse struct {
	ID                string              `json:"id"`
	EmployeeCode      *string             `json:"employee_code,omitempty"`
	Name              string              `json:"name"`
	Email             string              `json:"email"`
	Role              string              `json:"role"`
	ProfileImageURL   *string             `json:"profile_image_url,omitempty"`
	TotalCompensation decimal.Decimal     `json:"total_compensation"`
	Basic             decimal.Decimal     `json:"basic"`
	HousingAllowance  decimal.Decimal     `json:"housing_allowance"`
	DearnessAllowance decimal.Decimal     `json:"dearness_allowance"`
	TravelAllowance   decimal.Decimal     `json:"travel_allowance"`
	SpecialAllowance  decimal.Decimal     `json:"special_allowance"`
	Allowances        []AllowanceResponse `json:"allowances,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type SalaryHistoryResponse struct {
	ID            string          `json:"id"`
	PreviousTotal decimal.Decimal `json:"previous_total"`
	NewTotal      decimal.Decimal `json:"new_total"`
	RecordedAt    time.Time       `json:"recorded_at"`
}

type Filter struct {
	Search string
	Page   int
	Limit  int
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type StatsResponse struct {
	Count                int64           `json:"count"`
	TotalCompensationSum decimal.Decimal `json:"total_compensation_sum"`
	AverageCompensation  decimal.Decimal `json:"average_compensation"`
	HighestPaidName      *string         `json:"highest_paid_name,omitempty"`
}

type SeedCodesResponse struct {
	Assigned int `json:"assigned"`
}

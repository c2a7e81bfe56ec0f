package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                string
	EmployeeCode      *string // external identifier; nil on rows that predate the column
	Name              string
	Email             string
	Role              string
	ProfileImageURL   *string
	TotalCompensation decimal.Decimal
	Basic             decimal.Decimal
	HousingAllowance  decimal.Decimal
	DearnessAllowance decimal.Decimal
	TravelAllowance   decimal.Decimal
	SpecialAllowance  decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Compensation is the full component state written back by the ledger.
type Compensation struct {
	Total    decimal.Decimal
	Basic    decimal.Decimal
	Housing  decimal.Decimal
	Dearness decimal.Decimal
	Travel   decimal.Decimal
	Special  decimal.Decimal
}

// NeedsHealing reports whether the row predates the breakdown columns:
// a non-zero total with a zero basic component.
func (e Employee) NeedsHealing() bool {
	return e.TotalCompensation.IsPositive() && e.Basic.IsZero()
}

// VariableAllowance is a labeled ad hoc amount on top of the standard split.
type VariableAllowance struct {
	ID         string
	EmployeeID string
	Label      string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// SalaryHistoryEntry is an immutable audit record of a total-compensation change.
type SalaryHistoryEntry struct {
	ID            string
	EmployeeID    string
	PreviousTotal decimal.Decimal
	NewTotal      decimal.Decimal
	RecordedAt    time.Time
}

// Stats is the aggregate over all employees.
type Stats struct {
	Count                int64
	TotalCompensationSum decimal.Decimal
	AverageCompensation  decimal.Decimal
	HighestPaidName      *string
}

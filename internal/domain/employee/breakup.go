package employee

import "github.com/shopspring/decimal"

var (
	basicRate    = decimal.NewFromFloat(0.40)
	housingRate  = decimal.NewFromFloat(0.20)
	dearnessRate = decimal.NewFromFloat(0.10)
	travelRate   = decimal.NewFromFloat(0.05)
)

// StandardBreakup splits a total compensation figure into the fixed
// percentage components. Basic, housing, dearness and travel are each
// rounded to the nearest whole unit independently; special absorbs the
// rounding remainder so the five components always sum exactly to total.
// Caller must ensure total >= 0.
func StandardBreakup(total decimal.Decimal) Compensation {
	basic := total.Mul(basicRate).Round(0)
	housing := total.Mul(housingRate).Round(0)
	dearness := total.Mul(dearnessRate).Round(0)
	travel := total.Mul(travelRate).Round(0)
	special := total.Sub(basic).Sub(housing).Sub(dearness).Sub(travel)

	return Compensation{
		Total:    total,
		Basic:    basic,
		Housing:  housing,
		Dearness: dearness,
		Travel:   travel,
		Special:  special,
	}
}

// ComponentSum is the bottom-up total: standard components plus allowances.
func ComponentSum(e Employee, allowances []VariableAllowance) decimal.Decimal {
	total := e.Basic.
		Add(e.HousingAllowance).
		Add(e.DearnessAllowance).
		Add(e.TravelAllowance).
		Add(e.SpecialAllowance)
	for _, a := range allowances {
		total = total.Add(a.Amount)
	}
	return total
}

// Package sip projects a monthly systematic investment plan whose
// contribution steps up once a year.
package sip

import (
	"math"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// Inputs describes the plan. All rates are annual percentages.
type Inputs struct {
	MonthlyContribution float64
	Years               float64
	ExpectedReturn      float64
	StepUp              float64
	Inflation           float64
}

// Result summarizes the projection at the end of the plan.
type Result struct {
	TotalInvestment   float64 `json:"totalInvestment" yaml:"totalInvestment"`
	FinalValue        float64 `json:"finalValue" yaml:"finalValue"`
	TotalReturns      float64 `json:"totalReturns" yaml:"totalReturns"`
	RealValue         float64 `json:"realValue" yaml:"realValue"`
	ReturnsPercentage float64 `json:"returnsPercentage" yaml:"returnsPercentage"`
}

// YearEndValue is the value at year end of twelve monthly contributions made
// at the start of each month (annuity due) at monthly rate i.
func YearEndValue(contribution, i float64) float64 {
	months := float64(constants.MonthsPerYear)
	if i == 0 {
		return contribution * months
	}
	return contribution * ((math.Pow(1+i, months) - 1) / i) * (1 + i)
}

// Compute runs the projection year by year. A non-positive period yields an
// all-zero result.
func Compute(in Inputs) Result {
	if in.Years <= 0 {
		return Result{}
	}

	monthlyReturn := mathutil.MonthlyRate(in.ExpectedReturn)
	annualGrowth := 1 + mathutil.PercentToDecimal(in.ExpectedReturn)
	stepUp := 1 + mathutil.PercentToDecimal(in.StepUp)

	var res Result
	contribution := in.MonthlyContribution
	for year := 1; float64(year) <= in.Years; year++ {
		res.FinalValue = res.FinalValue*annualGrowth + YearEndValue(contribution, monthlyReturn)
		res.TotalInvestment += contribution * constants.MonthsPerYear
		contribution *= stepUp
	}

	res.TotalReturns = res.FinalValue - res.TotalInvestment
	if deflator := math.Pow(1+mathutil.PercentToDecimal(in.Inflation), in.Years); deflator > 0 {
		res.RealValue = res.FinalValue / deflator
	}
	res.ReturnsPercentage = mathutil.CalculatePercentage(res.TotalReturns, res.TotalInvestment)

	return res
}

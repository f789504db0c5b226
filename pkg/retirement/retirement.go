// Package retirement sizes the corpus needed to fund retirement expenses and
// the monthly investment required to build it.
package retirement

import (
	"math"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// Inputs describes the saver. Rates are annual percentages.
type Inputs struct {
	CurrentAge      float64
	RetirementAge   float64
	MonthlyExpenses float64 // in today's money
	LifeExpectancy  float64
	ExpectedReturn  float64
	Inflation       float64
	CurrentSavings  float64
}

// Result holds the retirement plan.
type Result struct {
	CorpusRequired        float64 `json:"corpusRequired" yaml:"corpusRequired"`
	MonthlySIPNeeded      float64 `json:"monthlySIPNeeded" yaml:"monthlySIPNeeded"`
	YearsToRetirement     float64 `json:"yearsToRetirement" yaml:"yearsToRetirement"`
	FutureMonthlyExpenses float64 `json:"futureMonthlyExpenses" yaml:"futureMonthlyExpenses"`
	RetirementYears       float64 `json:"retirementYears" yaml:"retirementYears"`
	RealReturn            float64 `json:"inflationAdjustedReturn" yaml:"inflationAdjustedReturn"` // percent
}

// Compute builds the plan. ok is false unless
// CurrentAge < RetirementAge < LifeExpectancy.
func Compute(in Inputs) (Result, bool) {
	if in.CurrentAge >= in.RetirementAge || in.RetirementAge >= in.LifeExpectancy {
		return Result{}, false
	}

	var res Result
	res.YearsToRetirement = in.RetirementAge - in.CurrentAge
	res.RetirementYears = in.LifeExpectancy - in.RetirementAge
	res.FutureMonthlyExpenses = mathutil.Compound(in.MonthlyExpenses, in.Inflation, res.YearsToRetirement)
	res.RealReturn = RealReturn(in.ExpectedReturn, in.Inflation)

	res.CorpusRequired = AnnuityPresentValue(
		res.FutureMonthlyExpenses,
		mathutil.MonthlyRate(res.RealReturn),
		res.RetirementYears*constants.MonthsPerYear,
	)

	savingsAtRetirement := mathutil.Compound(in.CurrentSavings, in.ExpectedReturn, res.YearsToRetirement)
	shortfall := math.Max(0, res.CorpusRequired-savingsAtRetirement)

	res.MonthlySIPNeeded = math.Max(0, AnnuityDuePayment(
		shortfall,
		mathutil.MonthlyRate(in.ExpectedReturn),
		res.YearsToRetirement*constants.MonthsPerYear,
	))

	return res, true
}

// RealReturn is the inflation-adjusted return, in percent. Deflation of 100%
// or more has no meaningful real return and yields 0.
func RealReturn(nominal, inflation float64) float64 {
	deflator := 1 + mathutil.PercentToDecimal(inflation)
	if deflator <= 0 {
		return 0
	}
	return ((1+mathutil.PercentToDecimal(nominal))/deflator - 1) * constants.PercentageMultiplier
}

// AnnuityPresentValue is the value today of n payments at periodic rate i.
// A non-positive rate values the payments at face.
func AnnuityPresentValue(payment, i, n float64) float64 {
	if i <= 0 {
		return payment * n
	}
	return payment * (1 - math.Pow(1+i, -n)) / i
}

// AnnuityDuePayment is the payment, made at the start of each of n periods,
// that grows to target at periodic rate i. A non-positive rate spreads target
// evenly.
func AnnuityDuePayment(target, i, n float64) float64 {
	if n <= 0 {
		return 0
	}
	if i <= 0 {
		return target / n
	}
	return target * i / ((math.Pow(1+i, n) - 1) * (1 + i))
}

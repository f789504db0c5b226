// Package bonds values a holding of fixed-coupon bonds held to maturity.
package bonds

import (
	"strings"

	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// Frequency is the coupon payment frequency. It is recorded but coupons are
// always accrued annually.
type Frequency string

const (
	Annual     Frequency = "annual"
	SemiAnnual Frequency = "semi-annual"
)

// ParseFrequency maps free text onto a payment frequency, defaulting to Annual.
func ParseFrequency(s string) Frequency {
	if strings.EqualFold(strings.TrimSpace(s), string(SemiAnnual)) {
		return SemiAnnual
	}
	return Annual
}

// Inputs describes the holding. CurrentPrice of zero means the bonds trade at
// face value.
type Inputs struct {
	FaceValue    float64
	CouponRate   float64 // percent
	Maturity     float64 // years
	Count        float64
	CurrentPrice float64
	Frequency    Frequency
}

// Result holds the cash flows and yields of the holding.
type Result struct {
	AnnualInterest  float64 `json:"annualInterest" yaml:"annualInterest"`
	TotalInterest   float64 `json:"totalBondInterest" yaml:"totalBondInterest"`
	MaturityValue   float64 `json:"maturityValue" yaml:"maturityValue"`
	TotalInvestment float64 `json:"totalInvestment" yaml:"totalInvestment"`
	TotalReturns    float64 `json:"totalReturns" yaml:"totalReturns"`
	CurrentYield    float64 `json:"currentYield" yaml:"currentYield"`
	YieldToMaturity float64 `json:"yieldToMaturity" yaml:"yieldToMaturity"`
}

// Compute values the holding. ok is false when face value, maturity or bond
// count is not positive.
func Compute(in Inputs) (Result, bool) {
	if in.FaceValue <= 0 || in.Maturity <= 0 || in.Count <= 0 {
		return Result{}, false
	}

	price := in.CurrentPrice
	if price <= 0 {
		price = in.FaceValue
	}

	couponPerBond := mathutil.ApplyPercentage(in.FaceValue, in.CouponRate)

	var res Result
	res.AnnualInterest = couponPerBond * in.Count
	res.TotalInterest = res.AnnualInterest * in.Maturity
	res.MaturityValue = in.FaceValue * in.Count
	res.TotalInvestment = price * in.Count
	res.TotalReturns = res.TotalInterest + res.MaturityValue - res.TotalInvestment
	res.CurrentYield = mathutil.CalculatePercentage(couponPerBond, price)

	// Simple annualized return on the amount invested, not a solved yield.
	annualReturn := res.TotalReturns / in.Maturity
	res.YieldToMaturity = mathutil.CalculatePercentage(annualReturn, res.TotalInvestment)

	return res, true
}

// Package options prices European options with the Black-Scholes-Merton
// closed form and reports the standard Greeks.
package options

import (
	"math"
	"strings"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// Type selects call or put pricing.
type Type string

const (
	Call Type = "call"
	Put  Type = "put"
)

// ParseType maps free text onto an option type. Anything other than "put"
// prices a call.
func ParseType(s string) Type {
	if strings.EqualFold(strings.TrimSpace(s), string(Put)) {
		return Put
	}
	return Call
}

// Inputs holds the pricing parameters. Rate and Volatility are percentages.
type Inputs struct {
	Spot         float64
	Strike       float64
	TimeToExpiry float64 // years
	Rate         float64
	Volatility   float64
	Type         Type
}

// Result holds the option value and its sensitivities.
type Result struct {
	Price float64 `json:"optionPrice" yaml:"optionPrice"`
	Delta float64 `json:"delta" yaml:"delta"`
	Gamma float64 `json:"gamma" yaml:"gamma"`
	Theta float64 `json:"theta" yaml:"theta"` // per calendar day
	Vega  float64 `json:"vega" yaml:"vega"`   // per volatility point
	Rho   float64 `json:"rho" yaml:"rho"`     // per rate point
}

// Compute prices the option. ok is false when spot, strike, expiry or
// volatility is not positive.
func Compute(in Inputs) (Result, bool) {
	S, K, T := in.Spot, in.Strike, in.TimeToExpiry
	r := mathutil.PercentToDecimal(in.Rate)
	sigma := mathutil.PercentToDecimal(in.Volatility)

	if S <= 0 || K <= 0 || T <= 0 || sigma <= 0 {
		return Result{}, false
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	discount := math.Exp(-r * T)
	pdf := NormPDF(d1)

	var res Result
	if in.Type == Put {
		res.Price = K*discount*NormCDF(-d2) - S*NormCDF(-d1)
		res.Delta = -NormCDF(-d1)
	} else {
		res.Price = S*NormCDF(d1) - K*discount*NormCDF(d2)
		res.Delta = NormCDF(d1)
	}

	// Theta and rho use the call expressions for both option types.
	res.Gamma = pdf / (S * sigma * sqrtT)
	res.Theta = (-S*pdf*sigma/(2*sqrtT) - r*K*discount*NormCDF(d2)) / constants.DaysPerYearTheta
	res.Vega = S * pdf * sqrtT / constants.PercentageMultiplier
	res.Rho = K * T * discount * NormCDF(d2) / constants.PercentageMultiplier

	return res, true
}

// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-tools/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * 100
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentToDecimal converts a percentage such as 12 into the fraction 0.12.
func PercentToDecimal(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage rate into a monthly fractional rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Compound grows value at the given annual percentage for the given number of years.
func Compound(value, annualPercent, years float64) float64 {
	return value * math.Pow(1+PercentToDecimal(annualPercent), years)
}

package options

import "math"

// Abramowitz and Stegun 7.1.26 coefficients.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Erf approximates the error function to about 1.5e-7. It is odd, so
// Erf(-x) == -Erf(x) exactly, and Erf(0) is pinned to 0.
func Erf(x float64) float64 {
	if x == 0 {
		return 0
	}
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)

	return sign * y
}

// NormCDF is the standard normal cumulative distribution function.
func NormCDF(x float64) float64 {
	return 0.5 * (1 + Erf(x/math.Sqrt2))
}

// NormPDF is the standard normal probability density function.
func NormPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// Package loans provides loan repayment and refinancing calculations.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-tools/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given monthly installment.
type Payment struct {
	Month              int     `json:"month" yaml:"month"`
	Payment            float64 `json:"payment" yaml:"payment"`
	Principal          float64 `json:"principal" yaml:"principal"`
	Interest           float64 `json:"interest" yaml:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal" yaml:"remainingPrincipal"`
}

// CalculateMonthlyPayment calculates the equated monthly installment for a
// loan using the standard amortization formula. termMonths may be fractional
// when a tenure in years does not divide evenly.
func CalculateMonthlyPayment(principal, annualInterestRate, termMonths float64) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / termMonths
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, termMonths)
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the month-by-month repayment schedule of a loan.
// The final installment absorbs any rounding left in the balance.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualInterestRate float64, termMonths int) ([]Payment, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %.2f", principal)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("term must be at least one month, got %d", termMonths)
	}
	if annualInterestRate < 0 {
		return nil, fmt.Errorf("interest rate cannot be negative, got %.2f", annualInterestRate)
	}

	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, float64(termMonths))
	schedule := make([]Payment, 0, termMonths)
	remaining := principal

	for month := 1; month <= termMonths; month++ {
		var current Payment
		current.Month = month
		current.Interest = CalculateInterestPayment(remaining, annualInterestRate)
		current.Principal = monthlyPayment - current.Interest
		current.Payment = monthlyPayment

		if month == termMonths || mathutil.Round(remaining-current.Principal) <= 0 {
			// We will get machine error otherwise so just settle the balance.
			if residual := remaining - current.Principal; !mathutil.IsZero(residual) {
				g.logger.Debug(fmt.Sprintf("settling residual balance %.2f in month %d", residual, month),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			current.Principal = remaining
			current.Payment = remaining + current.Interest
			current.RemainingPrincipal = 0.00
			schedule = append(schedule, current)
			break
		}

		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	return schedule, nil
}

// TotalInterest sums the interest paid over a schedule.
func TotalInterest(schedule []Payment) float64 {
	total := 0.0
	for _, p := range schedule {
		total += p.Interest
	}
	return total
}

package loans

import (
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualInterestRate float64
		termMonths         float64
		expected           float64
	}{
		{
			name:               "One year personal loan",
			principal:          100000,
			annualInterestRate: 12.0,
			termMonths:         12,
			expected:           8884.8789,
		},
		{
			name:               "Fifteen year home loan",
			principal:          2500000,
			annualInterestRate: 8.5,
			termMonths:         180,
			expected:           24618.4889,
		},
		{
			name:               "Zero interest loan",
			principal:          12000,
			annualInterestRate: 0.0,
			termMonths:         60,
			expected:           200,
		},
		{
			name:               "Zero term",
			principal:          12000,
			annualInterestRate: 9.0,
			termMonths:         0,
			expected:           0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment := CalculateMonthlyPayment(tt.principal, tt.annualInterestRate, tt.termMonths)
			if math.Abs(payment-tt.expected) > 0.001 {
				t.Errorf("CalculateMonthlyPayment() = %.4f, expected %.4f", payment, tt.expected)
			}
		})
	}
}

func TestCalculateInterestPayment(t *testing.T) {
	got := CalculateInterestPayment(120000, 12.0)
	if math.Abs(got-1200) > 0.0001 {
		t.Errorf("CalculateInterestPayment() = %.4f, expected 1200", got)
	}
}

func TestGenerateSchedule(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(zap.NewNop())

	schedule, err := generator.GenerateSchedule(100000, 12.0, 12)
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	if len(schedule) != 12 {
		t.Fatalf("expected 12 payments, got %d", len(schedule))
	}

	first := schedule[0]
	if math.Abs(first.Interest-1000) > 0.0001 {
		t.Errorf("first interest = %.4f, expected 1000", first.Interest)
	}
	if math.Abs(first.Principal+first.Interest-first.Payment) > 0.0001 {
		t.Errorf("principal and interest should add up to the payment")
	}

	last := schedule[len(schedule)-1]
	if last.RemainingPrincipal != 0 {
		t.Errorf("final remaining principal = %.4f, expected 0", last.RemainingPrincipal)
	}

	totalPrincipal := 0.0
	for _, p := range schedule {
		totalPrincipal += p.Principal
	}
	if math.Abs(totalPrincipal-100000) > 0.01 {
		t.Errorf("principal repaid = %.2f, expected 100000", totalPrincipal)
	}

	wantInterest := 8884.8789*12 - 100000
	if math.Abs(TotalInterest(schedule)-wantInterest) > 0.01 {
		t.Errorf("TotalInterest() = %.2f, expected %.2f", TotalInterest(schedule), wantInterest)
	}
}

func TestGenerateScheduleRejectsBadInputs(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(nil)

	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"Zero principal", 0, 10, 12},
		{"Negative rate", 1000, -1, 12},
		{"Zero term", 1000, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := generator.GenerateSchedule(tt.principal, tt.rate, tt.months); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

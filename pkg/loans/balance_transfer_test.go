package loans

import (
	"math"
	"strings"
	"testing"
)

func referenceTransfer() TransferInputs {
	return TransferInputs{
		Outstanding:       2500000,
		CurrentEMI:        25000,
		RemainingTenure:   15,
		CurrentRate:       9.5,
		LoanType:          "home",
		NewRate:           8.5,
		ProcessingFee:     50000,
		NewTenure:         15,
		AdditionalCharges: 10000,
	}
}

func TestAnalyzeTransfer(t *testing.T) {
	res, ok := AnalyzeTransfer(referenceTransfer())
	if !ok {
		t.Fatal("expected a result")
	}

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"NewEMI", res.NewEMI, 24618.4889},
		{"EMISavings", res.EMISavings, 381.5111},
		{"TotalCurrentPayment", res.TotalCurrentPayment, 4500000},
		{"TotalNewPayment", res.TotalNewPayment, 4431328.0107},
		{"TransferCost", res.TransferCost, 60000},
		{"NetSavings", res.NetSavings, 8671.9893},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.expected) > 0.001 {
				t.Errorf("%s = %.4f, expected %.4f", tt.name, tt.got, tt.expected)
			}
		})
	}

	if res.BreakEvenMonths != 158 {
		t.Errorf("BreakEvenMonths = %d, expected 158", res.BreakEvenMonths)
	}
	if res.Category != HighlyRecommended || !res.Viable {
		t.Errorf("expected a viable %q, got %q (viable=%v)", HighlyRecommended, res.Category, res.Viable)
	}
	want := "Highly Recommended: You'll save ₹8,672 over the loan tenure. Break-even in 158 months."
	if res.Recommendation != want {
		t.Errorf("Recommendation = %q, expected %q", res.Recommendation, want)
	}
}

func TestAnalyzeTransferDefaultsNewTenure(t *testing.T) {
	in := referenceTransfer()
	in.NewTenure = 0

	withDefault, ok := AnalyzeTransfer(in)
	if !ok {
		t.Fatal("expected a result")
	}
	explicit, _ := AnalyzeTransfer(referenceTransfer())
	if withDefault != explicit {
		t.Errorf("a blank new tenure should keep the remaining tenure")
	}
}

func TestAnalyzeTransferCategories(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(in *TransferInputs)
		category string
	}{
		{
			name:     "Savings outweigh costs",
			modify:   func(in *TransferInputs) {},
			category: HighlyRecommended,
		},
		{
			name: "Lower EMI eaten by fees",
			modify: func(in *TransferInputs) {
				in.ProcessingFee = 80000
			},
			category: CautiouslyRecommended,
		},
		{
			name: "Lower rate but higher EMI",
			modify: func(in *TransferInputs) {
				in.CurrentEMI = 20000
				in.CurrentRate = 9.5
				in.NewRate = 9.0
			},
			category: ConsiderNegotiating,
		},
		{
			name: "Higher rate",
			modify: func(in *TransferInputs) {
				in.NewRate = 11
			},
			category: NotRecommended,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceTransfer()
			tt.modify(&in)
			res, ok := AnalyzeTransfer(in)
			if !ok {
				t.Fatal("expected a result")
			}
			if res.Category != tt.category {
				t.Errorf("Category = %q, expected %q (net %.2f, emi %.2f)", res.Category, tt.category, res.NetSavings, res.EMISavings)
			}
			if !strings.HasPrefix(res.Recommendation, tt.category+":") {
				t.Errorf("Recommendation %q should start with its category", res.Recommendation)
			}
			if res.Viable != (tt.category == HighlyRecommended) {
				t.Errorf("Viable = %v for category %q", res.Viable, tt.category)
			}
		})
	}
}

func TestAnalyzeTransferBreakEvenWithoutSavings(t *testing.T) {
	in := referenceTransfer()
	in.NewRate = 11
	res, _ := AnalyzeTransfer(in)
	if res.BreakEvenMonths != 0 {
		t.Errorf("BreakEvenMonths = %d, expected 0 when EMI does not drop", res.BreakEvenMonths)
	}
}

func TestAnalyzeTransferGuards(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *TransferInputs)
	}{
		{"No outstanding", func(in *TransferInputs) { in.Outstanding = 0 }},
		{"No new rate", func(in *TransferInputs) { in.NewRate = 0 }},
		{"No tenure at all", func(in *TransferInputs) { in.NewTenure = 0; in.RemainingTenure = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceTransfer()
			tt.modify(&in)
			if res, ok := AnalyzeTransfer(in); ok || res != (TransferResult{}) {
				t.Errorf("expected no result, got %+v", res)
			}
		})
	}
}

func TestTransferSchedule(t *testing.T) {
	schedule, err := NewAmortizationScheduleGenerator(nil).TransferSchedule(referenceTransfer())
	if err != nil {
		t.Fatalf("TransferSchedule() error = %v", err)
	}
	if len(schedule) != 180 {
		t.Errorf("expected 180 payments, got %d", len(schedule))
	}
}

func TestAnalyzeTransferIsIdempotent(t *testing.T) {
	in := referenceTransfer()
	first, ok1 := AnalyzeTransfer(in)
	second, ok2 := AnalyzeTransfer(in)
	if first != second || ok1 != ok2 {
		t.Errorf("repeated calls should return identical results")
	}
}

func TestBreakEvenMonthsIsBounded(t *testing.T) {
	tests := []struct {
		name     string
		cost     float64
		savings  float64
		expected int
	}{
		{"Reference case", 60000, 381.5111, 158},
		{"Exact division", 1000, 100, 10},
		{"No cost", 0, 500, 0},
		{"Tiny saving", 60000, 1e-300, MaxBreakEvenMonths},
		{"Saving below float resolution", 60000, 5e-324, MaxBreakEvenMonths},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := breakEvenMonths(tt.cost, tt.savings); got != tt.expected {
				t.Errorf("breakEvenMonths(%v, %v) = %d, expected %d", tt.cost, tt.savings, got, tt.expected)
			}
		})
	}

	in := referenceTransfer()
	in.CurrentEMI = CalculateMonthlyPayment(in.Outstanding, in.NewRate, in.NewTenure*12) + 1e-9
	res, ok := AnalyzeTransfer(in)
	if !ok {
		t.Fatal("expected a result")
	}
	if res.BreakEvenMonths <= 0 || res.BreakEvenMonths > MaxBreakEvenMonths {
		t.Errorf("BreakEvenMonths = %d, expected a value in (0, %d]", res.BreakEvenMonths, MaxBreakEvenMonths)
	}
}

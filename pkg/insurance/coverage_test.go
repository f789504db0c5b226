package insurance

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		in       Inputs
		expected Result
	}{
		{
			name: "Household with a home loan",
			in:   Inputs{CurrentAge: 35, AnnualIncome: 1800000, CurrentExpenses: 60000, OutstandingLoans: 2500000, Dependents: 2},
			expected: Result{
				IncomeReplacement: 720000,
				LoanCoverage:      2500000,
				EmergencyFund:     30000,
				TotalCoverage:     3250000,
			},
		},
		{
			name:     "Empty form",
			in:       Inputs{},
			expected: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.in); got != tt.expected {
				t.Errorf("Compute() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestUnusedFieldsDoNotAffectCoverage(t *testing.T) {
	base := Inputs{CurrentExpenses: 40000, OutstandingLoans: 100000}
	varied := base
	varied.CurrentAge = 52
	varied.AnnualIncome = 9000000
	varied.Dependents = 4

	if Compute(base) != Compute(varied) {
		t.Errorf("age, income and dependents should not change the coverage")
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := Inputs{CurrentAge: 40, AnnualIncome: 2400000, CurrentExpenses: 900000, OutstandingLoans: 1200000, Dependents: 3}
	if Compute(in) != Compute(in) {
		t.Errorf("repeated calls should return identical results")
	}
}

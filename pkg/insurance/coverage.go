// Package insurance sizes term life cover from a household's needs.
package insurance

import "github.com/iwvelando/finance-tools/pkg/constants"

// EmergencyFundFactor is applied to the annual expenses to size the emergency
// component of the cover (six months of spending).
const EmergencyFundFactor = 0.5

// Inputs describes the insured household. Age, AnnualIncome and Dependents are
// collected by the form but do not enter the sizing formula.
type Inputs struct {
	CurrentAge       float64
	AnnualIncome     float64
	CurrentExpenses  float64 // annual
	OutstandingLoans float64
	Dependents       float64
}

// Result breaks the recommended sum assured into its components.
type Result struct {
	IncomeReplacement float64 `json:"incomeReplacement" yaml:"incomeReplacement"`
	LoanCoverage      float64 `json:"loanCoverage" yaml:"loanCoverage"`
	EmergencyFund     float64 `json:"emergencyFund" yaml:"emergencyFund"`
	TotalCoverage     float64 `json:"totalCoverage" yaml:"totalCoverage"`
}

// Compute sizes the cover as twelve times the expenses figure plus
// outstanding loans plus the emergency component.
func Compute(in Inputs) Result {
	res := Result{
		IncomeReplacement: in.CurrentExpenses * constants.MonthsPerYear,
		LoanCoverage:      in.OutstandingLoans,
		EmergencyFund:     in.CurrentExpenses * EmergencyFundFactor,
	}
	res.TotalCoverage = res.IncomeReplacement + res.LoanCoverage + res.EmergencyFund
	return res
}

package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/format"
)

// Recommendation categories, evaluated in order.
const (
	HighlyRecommended     = "Highly Recommended"
	CautiouslyRecommended = "Cautiously Recommended"
	ConsiderNegotiating   = "Consider Negotiating"
	NotRecommended        = "Not Recommended"
)

// MarginalLossLimit is the net loss below which a lower EMI is still worth a
// cautious recommendation.
const MarginalLossLimit = -50000.0

// MaxBreakEvenMonths caps the reported break-even period when the monthly
// saving is too small to recover the transfer cost in any real tenure.
const MaxBreakEvenMonths = 1200

// TransferInputs describes the existing loan and the refinancing offer.
// Tenures are in years; rates are annual percentages. A zero NewTenure keeps
// the remaining tenure.
type TransferInputs struct {
	Outstanding       float64
	CurrentEMI        float64
	RemainingTenure   float64
	CurrentRate       float64
	LoanType          string
	NewRate           float64
	ProcessingFee     float64
	NewTenure         float64
	AdditionalCharges float64
}

// TransferResult is the cost-benefit analysis of moving the loan.
type TransferResult struct {
	NewEMI              float64 `json:"newEMI" yaml:"newEMI"`
	EMISavings          float64 `json:"emiSavings" yaml:"emiSavings"`
	TotalCurrentPayment float64 `json:"totalCurrentPayment" yaml:"totalCurrentPayment"`
	TotalNewPayment     float64 `json:"totalNewPayment" yaml:"totalNewPayment"`
	TransferCost        float64 `json:"totalCost" yaml:"totalCost"`
	NetSavings          float64 `json:"netSavings" yaml:"netSavings"`
	BreakEvenMonths     int     `json:"breakEvenMonths" yaml:"breakEvenMonths"`
	Category            string  `json:"category" yaml:"category"`
	Recommendation      string  `json:"recommendation" yaml:"recommendation"`
	Viable              bool    `json:"isViable" yaml:"isViable"`
}

// AnalyzeTransfer evaluates a balance transfer. ok is false when the
// outstanding amount, new rate or new tenure is not positive.
func AnalyzeTransfer(in TransferInputs) (TransferResult, bool) {
	newTenure := in.NewTenure
	if newTenure <= 0 {
		newTenure = in.RemainingTenure
	}
	if in.Outstanding <= 0 || in.NewRate <= 0 || newTenure <= 0 {
		return TransferResult{}, false
	}

	newMonths := newTenure * constants.MonthsPerYear

	var res TransferResult
	res.NewEMI = CalculateMonthlyPayment(in.Outstanding, in.NewRate, newMonths)
	res.TotalCurrentPayment = in.CurrentEMI * in.RemainingTenure * constants.MonthsPerYear
	res.TotalNewPayment = res.NewEMI * newMonths
	res.TransferCost = in.ProcessingFee + in.AdditionalCharges
	res.EMISavings = in.CurrentEMI - res.NewEMI
	res.NetSavings = res.TotalCurrentPayment - res.TotalNewPayment - res.TransferCost

	if res.EMISavings > 0 {
		res.BreakEvenMonths = breakEvenMonths(res.TransferCost, res.EMISavings)
	}

	res.Category, res.Recommendation, res.Viable = recommend(in, res)
	return res, true
}

func recommend(in TransferInputs, res TransferResult) (string, string, bool) {
	switch {
	case res.NetSavings > 0 && res.EMISavings > 0:
		msg := fmt.Sprintf("%s: You'll save %s over the loan tenure. ", HighlyRecommended, format.WholeCurrency(res.NetSavings))
		if res.BreakEvenMonths > 0 {
			msg += fmt.Sprintf("Break-even in %d months.", res.BreakEvenMonths)
		}
		return HighlyRecommended, msg, true
	case res.EMISavings > 0 && res.NetSavings > MarginalLossLimit:
		return CautiouslyRecommended,
			CautiouslyRecommended + ": Lower EMI but marginal overall savings due to processing costs.", false
	case in.NewRate < in.CurrentRate:
		return ConsiderNegotiating,
			ConsiderNegotiating + ": The new rate is lower but costs may offset benefits. Try negotiating with your current lender.", false
	default:
		return NotRecommended,
			NotRecommended + ": The balance transfer doesn't offer significant financial benefits at this time.", false
	}
}

// breakEvenMonths is the number of monthly savings needed to recover cost,
// capped at MaxBreakEvenMonths.
func breakEvenMonths(cost, monthlySavings float64) int {
	months := math.Ceil(cost / monthlySavings)
	if math.IsNaN(months) || months < 0 {
		return 0
	}
	if months > MaxBreakEvenMonths {
		return MaxBreakEvenMonths
	}
	return int(months)
}

// TransferSchedule returns the repayment schedule of the proposed loan.
func (g *AmortizationScheduleGenerator) TransferSchedule(in TransferInputs) ([]Payment, error) {
	newTenure := in.NewTenure
	if newTenure <= 0 {
		newTenure = in.RemainingTenure
	}
	months := int(math.Ceil(newTenure * constants.MonthsPerYear))
	return g.GenerateSchedule(in.Outstanding, in.NewRate, months)
}

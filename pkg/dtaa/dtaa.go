// Package dtaa computes foreign tax credit relief under a double taxation
// avoidance agreement.
package dtaa

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-tools/pkg/format"
	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// Explanation sentences and form defaults.
const (
	FullCreditMessage = "You can claim full credit for foreign tax paid."
	CappedMessage     = "Relief is limited to Indian tax liability on foreign income."
	NoFurtherRelief   = "No additional tax relief available beyond what was paid abroad."
	DefaultCountry    = "usa"
	DefaultIncomeType = "salary"
	DefaultIndianSlab = 30.0
)

// Inputs describes the foreign income. Country and IncomeType only feed the
// explanation text.
type Inputs struct {
	ForeignIncome  float64
	ForeignTaxPaid float64
	IndianSlab     float64 // marginal rate, percent
	Country        string
	IncomeType     string
}

// Result holds the relief computation.
type Result struct {
	IndianTax      float64 `json:"indianTax" yaml:"indianTax"`
	ForeignTaxPaid float64 `json:"foreignTaxPaid" yaml:"foreignTaxPaid"`
	Relief         float64 `json:"dtaaRelief" yaml:"dtaaRelief"`
	EffectiveRate  float64 `json:"effectiveTaxRate" yaml:"effectiveTaxRate"`
	NetPayable     float64 `json:"netTaxPayable" yaml:"netTaxPayable"`
	Explanation    string  `json:"explanation" yaml:"explanation"`
}

// Compute applies the credit method: relief is the lower of the foreign tax
// paid and the Indian tax on the same income.
func Compute(in Inputs) Result {
	indianTax := mathutil.ApplyPercentage(in.ForeignIncome, in.IndianSlab)
	relief := math.Min(in.ForeignTaxPaid, indianTax)
	net := math.Max(0, indianTax-relief)

	res := Result{
		IndianTax:      indianTax,
		ForeignTaxPaid: in.ForeignTaxPaid,
		Relief:         relief,
		NetPayable:     net,
	}
	if in.ForeignIncome > 0 {
		res.EffectiveRate = mathutil.CalculatePercentage(net, in.ForeignIncome)
	}
	res.Explanation = explain(in, relief, indianTax)

	return res
}

func explain(in Inputs, relief, indianTax float64) string {
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = DefaultCountry
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DTAA relief of %s is available as per the tax treaty with %s. ",
		format.Currency(relief), strings.ToUpper(country))

	// relief is min(foreign, indian), so the last branch cannot be reached.
	switch relief {
	case in.ForeignTaxPaid:
		b.WriteString(FullCreditMessage)
	case indianTax:
		b.WriteString(CappedMessage)
	default:
		b.WriteString(NoFurtherRelief)
	}
	return b.String()
}

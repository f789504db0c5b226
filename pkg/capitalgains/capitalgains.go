// Package capitalgains computes capital gains tax on the sale of an asset.
package capitalgains

import (
	"math"
	"strings"
	"time"

	"github.com/iwvelando/finance-tools/pkg/datetime"
	"github.com/iwvelando/finance-tools/pkg/mathutil"
)

// AssetClass selects the holding-period threshold and rate schedule.
type AssetClass string

const (
	Equity     AssetClass = "equity"
	MutualFund AssetClass = "mutual-fund"
	Immovable  AssetClass = "immovable"
	Other      AssetClass = "other"
)

// ParseAssetClass maps free text onto an asset class; unknown values are Other.
func ParseAssetClass(s string) AssetClass {
	switch c := AssetClass(strings.ToLower(strings.TrimSpace(s))); c {
	case Equity, MutualFund, Immovable:
		return c
	default:
		return Other
	}
}

// Tax policy constants.
const (
	EquityLongTermRate    = 10.0
	EquityShortTermRate   = 15.0
	EquityExemption       = 100000.0
	EquityThresholdYears  = 1.0
	PropertyLongTermRate  = 20.0
	PropertyShortTermRate = 30.0
	PropertyThreshold     = 2.0
	OtherRate             = 20.0

	// AssumedInflation is the annual percentage used to index the cost basis.
	AssumedInflation = 5.0
)

// Inputs describes one sale.
type Inputs struct {
	PurchasePrice   float64
	SalePrice       float64
	PurchaseDate    time.Time
	SaleDate        time.Time
	Asset           AssetClass
	ImprovementCost float64
}

// Result holds the computed gain and tax.
type Result struct {
	CapitalGains float64 `json:"capitalGains" yaml:"capitalGains"`
	IndexedCost  float64 `json:"indexedCost" yaml:"indexedCost"`
	TaxableGains float64 `json:"taxableGains" yaml:"taxableGains"`
	TaxRate      float64 `json:"taxRate" yaml:"taxRate"`
	Exemption    float64 `json:"exemption" yaml:"exemption"`
	Tax          float64 `json:"ltcgTax" yaml:"ltcgTax"`
	HoldingYears float64 `json:"holdingYears" yaml:"holdingYears"`
	LongTerm     bool    `json:"longTerm" yaml:"longTerm"`
}

// Compute classifies the holding and applies the rate, exemption and
// indexation policy for the asset class. Long-term thresholds are strict:
// a holding of exactly one year is short-term for equity.
func Compute(in Inputs) Result {
	holding := datetime.YearsBetween(in.PurchaseDate, in.SaleDate)
	totalCost := in.PurchasePrice + in.ImprovementCost

	res := Result{
		CapitalGains: in.SalePrice - totalCost,
		IndexedCost:  totalCost,
		HoldingYears: holding,
	}

	switch in.Asset {
	case Equity, MutualFund:
		if holding > EquityThresholdYears {
			res.LongTerm = true
			res.TaxRate = EquityLongTermRate
			res.Exemption = math.Min(EquityExemption, res.CapitalGains)
		} else {
			res.TaxRate = EquityShortTermRate
		}
	case Immovable:
		if holding > PropertyThreshold {
			res.LongTerm = true
			res.TaxRate = PropertyLongTermRate
			res.IndexedCost = indexCost(totalCost, holding)
		} else {
			res.TaxRate = PropertyShortTermRate
		}
	default:
		// Indexed regardless of holding period.
		res.LongTerm = true
		res.TaxRate = OtherRate
		res.IndexedCost = indexCost(totalCost, holding)
	}

	gain := math.Max(res.CapitalGains, in.SalePrice-res.IndexedCost)
	res.TaxableGains = math.Max(0, gain-res.Exemption)
	res.Tax = mathutil.ApplyPercentage(res.TaxableGains, res.TaxRate)

	return res
}

func indexCost(cost, years float64) float64 {
	return mathutil.Compound(cost, AssumedInflation, years)
}

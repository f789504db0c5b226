package capitalgains

import (
	"math"
	"testing"
	"time"

	"github.com/iwvelando/finance-tools/pkg/testutil"
)

func yearsAfter(start time.Time, years float64) time.Time {
	return start.Add(time.Duration(years * 365.25 * 24 * float64(time.Hour)))
}

var purchase = testutil.Date("2020-06-01")

func TestEquityHoldingBoundary(t *testing.T) {
	base := Inputs{PurchasePrice: 100000, SalePrice: 350000, PurchaseDate: purchase, Asset: Equity}

	t.Run("Exactly one year is short-term", func(t *testing.T) {
		in := base
		in.SaleDate = yearsAfter(purchase, 1.0)
		res := Compute(in)
		if res.HoldingYears != 1.0 {
			t.Fatalf("HoldingYears = %v, expected exactly 1", res.HoldingYears)
		}
		if res.LongTerm || res.TaxRate != 15 || res.Exemption != 0 {
			t.Errorf("expected short-term 15%% with no exemption, got %+v", res)
		}
		if math.Abs(res.Tax-37500) > 1e-6 {
			t.Errorf("Tax = %v, expected 37500", res.Tax)
		}
	})

	t.Run("Just over one year is long-term", func(t *testing.T) {
		in := base
		in.SaleDate = yearsAfter(purchase, 1.0000001)
		res := Compute(in)
		if !res.LongTerm || res.TaxRate != 10 || res.Exemption != 100000 {
			t.Errorf("expected long-term 10%% with exemption, got %+v", res)
		}
		if math.Abs(res.TaxableGains-150000) > 1e-6 || math.Abs(res.Tax-15000) > 1e-6 {
			t.Errorf("taxable/tax = %v/%v, expected 150000/15000", res.TaxableGains, res.Tax)
		}
		if res.IndexedCost != 100000 {
			t.Errorf("equity cost must not be indexed, got %v", res.IndexedCost)
		}
	})
}

func TestMutualFundSmallGainExemption(t *testing.T) {
	res := Compute(Inputs{
		PurchasePrice: 50000,
		SalePrice:     90000,
		PurchaseDate:  purchase,
		SaleDate:      yearsAfter(purchase, 3),
		Asset:         MutualFund,
	})

	if res.Exemption != 40000 {
		t.Errorf("Exemption = %v, expected the whole 40000 gain", res.Exemption)
	}
	if res.TaxableGains != 0 || res.Tax != 0 {
		t.Errorf("expected no tax, got %+v", res)
	}
}

func TestImmovableProperty(t *testing.T) {
	in := Inputs{
		PurchasePrice:   900000,
		ImprovementCost: 100000,
		SalePrice:       2000000,
		PurchaseDate:    testutil.Date("2020-06-01"),
		SaleDate:        testutil.Date("2023-06-01"),
		Asset:           Immovable,
	}
	res := Compute(in)

	if !res.LongTerm || res.TaxRate != 20 {
		t.Fatalf("expected long-term 20%%, got %+v", res)
	}
	if math.Abs(res.IndexedCost-1157509.029) > 1e-2 {
		t.Errorf("IndexedCost = %v, expected 1157509.029", res.IndexedCost)
	}
	// Raw gain exceeds the indexed gain, so the raw gain is taxed.
	if res.CapitalGains != 1000000 || res.TaxableGains != 1000000 {
		t.Errorf("gains = %v/%v, expected 1000000", res.CapitalGains, res.TaxableGains)
	}
	if math.Abs(res.Tax-200000) > 1e-6 {
		t.Errorf("Tax = %v, expected 200000", res.Tax)
	}

	in.SaleDate = yearsAfter(in.PurchaseDate, 2)
	short := Compute(in)
	if short.LongTerm || short.TaxRate != 30 || short.IndexedCost != 1000000 {
		t.Errorf("two years exactly should be short-term without indexation, got %+v", short)
	}
}

func TestOtherAssetAlwaysIndexed(t *testing.T) {
	res := Compute(Inputs{
		PurchasePrice: 50000,
		SalePrice:     60000,
		PurchaseDate:  testutil.Date("2023-01-01"),
		SaleDate:      testutil.Date("2024-01-01"),
		Asset:         Other,
	})

	if res.TaxRate != 20 {
		t.Errorf("TaxRate = %v, expected 20", res.TaxRate)
	}
	if math.Abs(res.IndexedCost-52498.2468) > 1e-3 {
		t.Errorf("IndexedCost = %v, expected 52498.2468 even for a short holding", res.IndexedCost)
	}
	if math.Abs(res.Tax-2000) > 1e-6 {
		t.Errorf("Tax = %v, expected 2000", res.Tax)
	}
}

func TestLossIsNeverTaxed(t *testing.T) {
	for _, asset := range []AssetClass{Equity, MutualFund, Immovable, Other} {
		res := Compute(Inputs{
			PurchasePrice: 500000,
			SalePrice:     300000,
			PurchaseDate:  purchase,
			SaleDate:      yearsAfter(purchase, 4),
			Asset:         asset,
		})
		if res.TaxableGains != 0 || res.Tax != 0 {
			t.Errorf("%s: loss produced tax %+v", asset, res)
		}
		if math.IsNaN(res.Tax) {
			t.Errorf("%s: tax is NaN", asset)
		}
	}
}

func TestUnsetDatesAreShortTerm(t *testing.T) {
	res := Compute(Inputs{PurchasePrice: 100, SalePrice: 200, Asset: Equity})
	if res.HoldingYears != 0 || res.LongTerm || res.TaxRate != 15 {
		t.Errorf("expected zero holding short-term treatment, got %+v", res)
	}
}

func TestParseAssetClass(t *testing.T) {
	tests := map[string]AssetClass{
		"equity":      Equity,
		"Mutual-Fund": MutualFund,
		" immovable ": Immovable,
		"gold":        Other,
		"":            Other,
	}
	for input, want := range tests {
		if got := ParseAssetClass(input); got != want {
			t.Errorf("ParseAssetClass(%q) = %v, expected %v", input, got, want)
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	in := Inputs{PurchasePrice: 120000, SalePrice: 410000, PurchaseDate: purchase, SaleDate: yearsAfter(purchase, 5.5), Asset: Immovable, ImprovementCost: 30000}
	if Compute(in) != Compute(in) {
		t.Errorf("repeated calls should return identical results")
	}
}

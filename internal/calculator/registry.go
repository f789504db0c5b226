// Package calculator maps calculator names to their engines and turns raw
// text inputs into results.
package calculator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/finance-tools/pkg/bonds"
	"github.com/iwvelando/finance-tools/pkg/capitalgains"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/datetime"
	"github.com/iwvelando/finance-tools/pkg/dtaa"
	"github.com/iwvelando/finance-tools/pkg/insurance"
	"github.com/iwvelando/finance-tools/pkg/loans"
	"github.com/iwvelando/finance-tools/pkg/numparse"
	"github.com/iwvelando/finance-tools/pkg/options"
	"github.com/iwvelando/finance-tools/pkg/retirement"
	"github.com/iwvelando/finance-tools/pkg/sip"
)

// ErrUnknownCalculator is returned for a name that is not registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Field kinds.
const (
	KindNumber = "number"
	KindDate   = "date"
	KindChoice = "choice"
	KindText   = "text"
)

// Field describes one input of a calculator.
type Field struct {
	Name    string   `json:"name" yaml:"name"`
	Label   string   `json:"label" yaml:"label"`
	Kind    string   `json:"kind" yaml:"kind"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Calculator is a registered engine together with its input form.
type Calculator struct {
	Name   string  `json:"name" yaml:"name"`
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`

	compute func(numparse.Fields) (interface{}, bool)
}

// Compute fills in defaults for absent fields, parses them and runs the
// engine. ok is false when the engine refuses the inputs.
func (c Calculator) Compute(raw map[string]string) (result interface{}, ok bool) {
	return c.compute(c.withDefaults(raw))
}

// HasField reports whether name is one of the calculator's inputs.
// Field names match case-insensitively.
func (c Calculator) HasField(name string) bool {
	_, ok := c.field(name)
	return ok
}

func (c Calculator) field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// withDefaults maps raw keys onto the canonical field names, since config
// loaders may lower-case them, and fills in defaults for absent fields.
func (c Calculator) withDefaults(raw map[string]string) numparse.Fields {
	fields := make(numparse.Fields, len(c.Fields))
	for k, v := range raw {
		if f, ok := c.field(k); ok {
			k = f.Name
		}
		fields[k] = v
	}
	for _, f := range c.Fields {
		if _, present := fields[f.Name]; !present && f.Default != "" {
			fields[f.Name] = f.Default
		}
	}
	return fields
}

func number(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindNumber}
}

var registry = map[string]Calculator{
	constants.CalculatorBlackScholes: {
		Name:  constants.CalculatorBlackScholes,
		Title: "Black-Scholes Option Pricing",
		Fields: []Field{
			number("stockPrice", "Current stock price"),
			number("strikePrice", "Strike price"),
			number("timeToExpiry", "Time to expiry (years)"),
			number("riskFreeRate", "Risk-free rate (%)"),
			number("volatility", "Volatility (%)"),
			{Name: "optionType", Label: "Option type", Kind: KindChoice, Default: string(options.Call),
				Choices: []string{string(options.Call), string(options.Put)}},
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return options.Compute(options.Inputs{
				Spot:         f.Float("stockPrice"),
				Strike:       f.Float("strikePrice"),
				TimeToExpiry: f.Float("timeToExpiry"),
				Rate:         f.Float("riskFreeRate"),
				Volatility:   f.Float("volatility"),
				Type:         options.ParseType(f.String("optionType", string(options.Call))),
			})
		},
	},
	constants.CalculatorSIP: {
		Name:  constants.CalculatorSIP,
		Title: "Step-Up SIP Calculator",
		Fields: []Field{
			number("sipAmount", "Monthly SIP amount"),
			number("investmentPeriod", "Investment period (years)"),
			number("expectedReturn", "Expected annual return (%)"),
			number("stepUp", "Annual step-up (%)"),
			number("inflationRate", "Inflation rate (%)"),
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return sip.Compute(sip.Inputs{
				MonthlyContribution: f.Float("sipAmount"),
				Years:               f.Float("investmentPeriod"),
				ExpectedReturn:      f.Float("expectedReturn"),
				StepUp:              f.Float("stepUp"),
				Inflation:           f.Float("inflationRate"),
			}), true
		},
	},
	constants.CalculatorCapitalGains: {
		Name:  constants.CalculatorCapitalGains,
		Title: "Capital Gains Tax Calculator",
		Fields: []Field{
			number("purchasePrice", "Purchase price"),
			number("salePrice", "Sale price"),
			{Name: "purchaseDate", Label: "Purchase date", Kind: KindDate},
			{Name: "saleDate", Label: "Sale date", Kind: KindDate},
			{Name: "assetType", Label: "Asset type", Kind: KindChoice, Default: string(capitalgains.Equity),
				Choices: []string{
					string(capitalgains.Equity), string(capitalgains.MutualFund),
					string(capitalgains.Immovable), string(capitalgains.Other),
				}},
			number("improvementCost", "Cost of improvement"),
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return capitalgains.Compute(capitalgains.Inputs{
				PurchasePrice:   f.Float("purchasePrice"),
				SalePrice:       f.Float("salePrice"),
				PurchaseDate:    datetime.ParseDateOrZero(f["purchaseDate"]),
				SaleDate:        datetime.ParseDateOrZero(f["saleDate"]),
				Asset:           capitalgains.ParseAssetClass(f.String("assetType", string(capitalgains.Equity))),
				ImprovementCost: f.Float("improvementCost"),
			}), true
		},
	},
	constants.CalculatorDTAA: {
		Name:  constants.CalculatorDTAA,
		Title: "DTAA Relief Calculator",
		Fields: []Field{
			number("foreignIncome", "Foreign income"),
			{Name: "country", Label: "Country", Kind: KindText, Default: dtaa.DefaultCountry},
			number("foreignTax", "Foreign tax paid"),
			{Name: "indianTaxSlab", Label: "Indian tax slab (%)", Kind: KindNumber, Default: "30"},
			{Name: "incomeType", Label: "Income type", Kind: KindText, Default: dtaa.DefaultIncomeType},
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return dtaa.Compute(dtaa.Inputs{
				ForeignIncome:  f.Float("foreignIncome"),
				ForeignTaxPaid: f.Float("foreignTax"),
				IndianSlab:     f.Float("indianTaxSlab"),
				Country:        f.String("country", dtaa.DefaultCountry),
				IncomeType:     f.String("incomeType", dtaa.DefaultIncomeType),
			}), true
		},
	},
	constants.CalculatorBonds: {
		Name:  constants.CalculatorBonds,
		Title: "Bonds Calculator",
		Fields: []Field{
			number("faceValue", "Face value"),
			number("couponRate", "Coupon rate (%)"),
			number("bondMaturity", "Maturity (years)"),
			number("numberOfBonds", "Number of bonds"),
			number("currentPrice", "Current price"),
			{Name: "paymentFrequency", Label: "Payment frequency", Kind: KindChoice, Default: string(bonds.Annual),
				Choices: []string{string(bonds.Annual), string(bonds.SemiAnnual)}},
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return bonds.Compute(bonds.Inputs{
				FaceValue:    f.Float("faceValue"),
				CouponRate:   f.Float("couponRate"),
				Maturity:     f.Float("bondMaturity"),
				Count:        f.Float("numberOfBonds"),
				CurrentPrice: f.Float("currentPrice"),
				Frequency:    bonds.ParseFrequency(f.String("paymentFrequency", string(bonds.Annual))),
			})
		},
	},
	constants.CalculatorRetirement: {
		Name:  constants.CalculatorRetirement,
		Title: "Retirement Planning Calculator",
		Fields: []Field{
			number("currentAge", "Current age"),
			number("retirementAge", "Retirement age"),
			number("monthlyExpenses", "Current monthly expenses"),
			number("lifeExpectancy", "Life expectancy"),
			number("expectedReturn", "Expected return (%)"),
			number("inflationRate", "Inflation rate (%)"),
			number("currentSavings", "Current savings"),
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return retirement.Compute(retirement.Inputs{
				CurrentAge:      f.Float("currentAge"),
				RetirementAge:   f.Float("retirementAge"),
				MonthlyExpenses: f.Float("monthlyExpenses"),
				LifeExpectancy:  f.Float("lifeExpectancy"),
				ExpectedReturn:  f.Float("expectedReturn"),
				Inflation:       f.Float("inflationRate"),
				CurrentSavings:  f.Float("currentSavings"),
			})
		},
	},
	constants.CalculatorTermInsurance: {
		Name:  constants.CalculatorTermInsurance,
		Title: "Term Insurance Calculator",
		Fields: []Field{
			number("currentAge", "Current age"),
			number("annualIncome", "Annual income"),
			number("currentExpenses", "Annual expenses"),
			number("outstandingLoans", "Outstanding loans"),
			number("dependents", "Number of dependents"),
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return insurance.Compute(insurance.Inputs{
				CurrentAge:       f.Float("currentAge"),
				AnnualIncome:     f.Float("annualIncome"),
				CurrentExpenses:  f.Float("currentExpenses"),
				OutstandingLoans: f.Float("outstandingLoans"),
				Dependents:       f.Float("dependents"),
			}), true
		},
	},
	constants.CalculatorBalanceTransfer: {
		Name:  constants.CalculatorBalanceTransfer,
		Title: "Loan Balance Transfer Analyzer",
		Fields: []Field{
			number("outstandingAmount", "Outstanding amount"),
			number("currentEMI", "Current EMI"),
			number("remainingTenure", "Remaining tenure (years)"),
			number("currentRate", "Current interest rate (%)"),
			{Name: "loanType", Label: "Loan type", Kind: KindText, Default: "home"},
			number("newRate", "New interest rate (%)"),
			number("processingFee", "Processing fee"),
			number("newTenure", "New tenure (years)"),
			number("additionalCharges", "Additional charges"),
		},
		compute: func(f numparse.Fields) (interface{}, bool) {
			return loans.AnalyzeTransfer(transferInputs(f))
		},
	},
}

func transferInputs(f numparse.Fields) loans.TransferInputs {
	return loans.TransferInputs{
		Outstanding:       f.Float("outstandingAmount"),
		CurrentEMI:        f.Float("currentEMI"),
		RemainingTenure:   f.Float("remainingTenure"),
		CurrentRate:       f.Float("currentRate"),
		LoanType:          f.String("loanType", "home"),
		NewRate:           f.Float("newRate"),
		ProcessingFee:     f.Float("processingFee"),
		NewTenure:         f.Float("newTenure"),
		AdditionalCharges: f.Float("additionalCharges"),
	}
}

// Lookup returns the calculator registered under name. Matching ignores case
// and surrounding space.
func Lookup(name string) (Calculator, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	c, ok := registry[key]
	if !ok {
		return Calculator{}, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
	}
	return c, nil
}

// Names lists the registered calculator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered calculator sorted by name.
func All() []Calculator {
	names := Names()
	out := make([]Calculator, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}

// Catalog exposes the registry to configuration validation.
type Catalog struct{}

// Known reports whether a calculator is registered under name.
func (Catalog) Known(name string) bool {
	_, err := Lookup(name)
	return err == nil
}

// HasField reports whether the named calculator accepts field.
func (Catalog) HasField(name, field string) bool {
	c, err := Lookup(name)
	return err == nil && c.HasField(field)
}

// FieldKind returns the kind of a calculator input, or "" when unknown.
func (Catalog) FieldKind(name, field string) string {
	c, err := Lookup(name)
	if err != nil {
		return ""
	}
	f, _ := c.field(field)
	return f.Kind
}

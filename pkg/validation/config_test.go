package validation

import (
	"strings"
	"testing"
)

type fakeCatalog map[string]map[string]string

func (f fakeCatalog) Known(calculator string) bool {
	_, ok := f[calculator]
	return ok
}

func (f fakeCatalog) HasField(calculator, field string) bool {
	_, ok := f[calculator][field]
	return ok
}

func (f fakeCatalog) FieldKind(calculator, field string) string {
	return f[calculator][field]
}

var catalog = fakeCatalog{
	"sip-calculator":  {"sipAmount": "number", "investmentPeriod": "number"},
	"ltcg-calculator": {"purchaseDate": "date", "assetType": "choice"},
}

func TestValidateInputValue(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		value      string
		expectWarn bool
	}{
		{"Plain number", "number", "5000", false},
		{"Grouped number", "number", "1,25,000", false},
		{"Explicit zero", "number", "0.00", false},
		{"Blank number", "number", "  ", false},
		{"Text in number field", "number", "five thousand", true},
		{"Infinite number", "number", "Inf", true},
		{"ISO date", "date", "2021-04-01", false},
		{"Bad date", "date", "01/04/2021", true},
		{"Choice is free text", "choice", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateInputValue("plan", "field", tt.kind, tt.value)
			if tt.expectWarn && warning == "" {
				t.Errorf("expected a warning for %q", tt.value)
			}
			if !tt.expectWarn && warning != "" {
				t.Errorf("unexpected warning: %s", warning)
			}
		})
	}
}

func TestValidateCalculations(t *testing.T) {
	calcs := []CalculationConfig{
		{Name: "plan", Calculator: "sip-calculator", Inputs: map[string]string{"sipAmount": "5000"}},
		{Name: "plan", Calculator: "sip-calculator", Inputs: map[string]string{"sipAmont": "5000"}},
		{Name: "", Calculator: "crypto-calculator"},
		{Name: "house", Calculator: "ltcg-calculator", Inputs: map[string]string{"purchaseDate": "yesterday"}},
	}

	warnings := ValidateCalculations(calcs, catalog)

	expected := []string{
		"Calculation name 'plan' is used more than once",
		"Calculation 'plan' sets unknown field 'sipAmont' for sip-calculator",
		"Calculation '#3' uses unknown calculator 'crypto-calculator'",
		"Calculation 'house' field 'purchaseDate' is not a date",
	}
	if len(warnings) != len(expected) {
		t.Fatalf("expected %d warnings, got %d: %v", len(expected), len(warnings), warnings)
	}
	for i, want := range expected {
		if !strings.HasPrefix(warnings[i], want) {
			t.Errorf("warning %d = %q, expected prefix %q", i, warnings[i], want)
		}
	}
}

func TestValidateCalculationsClean(t *testing.T) {
	calcs := []CalculationConfig{
		{Name: "a", Calculator: "sip-calculator", Inputs: map[string]string{"sipAmount": "5000", "investmentPeriod": "10"}},
		{Name: "b", Calculator: "ltcg-calculator", Inputs: map[string]string{"purchaseDate": "2020-01-01"}},
	}
	if warnings := ValidateCalculations(calcs, catalog); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

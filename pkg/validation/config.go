// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/finance-tools/pkg/datetime"
	"github.com/iwvelando/finance-tools/pkg/numparse"
)

// Catalog answers questions about the registered calculators.
type Catalog interface {
	Known(calculator string) bool
	HasField(calculator, field string) bool
	FieldKind(calculator, field string) string
}

// CalculationConfig is one configured calculator run.
type CalculationConfig struct {
	Name       string
	Calculator string
	Inputs     map[string]string
}

// ValidateInputValue checks that a single input parses as its kind expects.
// Unparseable values are still accepted at run time and read as zero or as
// an unknown date.
func ValidateInputValue(label, field, kind, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	switch kind {
	case "number":
		if numparse.Float(trimmed) == 0 && !looksLikeZero(trimmed) {
			return fmt.Sprintf("Calculation '%s' field '%s' is not a number (%q) and will be read as 0",
				label, field, value)
		}
	case "date":
		if _, err := datetime.ParseDate(trimmed); err != nil {
			return fmt.Sprintf("Calculation '%s' field '%s' is not a date (%q)", label, field, value)
		}
	}
	return ""
}

func looksLikeZero(s string) bool {
	return strings.Trim(strings.ReplaceAll(s, ",", ""), "0.+-") == ""
}

// ValidateCalculations checks the configured runs against the catalog and
// returns warnings for unknown calculators, unknown or malformed inputs and
// duplicate names.
func ValidateCalculations(calculations []CalculationConfig, catalog Catalog) []string {
	var warnings []string
	seen := make(map[string]int)

	for i, calc := range calculations {
		label := calc.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		} else {
			seen[calc.Name]++
			if seen[calc.Name] == 2 {
				warnings = append(warnings, fmt.Sprintf("Calculation name '%s' is used more than once", calc.Name))
			}
		}

		if !catalog.Known(calc.Calculator) {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' uses unknown calculator '%s'", label, calc.Calculator))
			continue
		}

		fields := make([]string, 0, len(calc.Inputs))
		for field := range calc.Inputs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		for _, field := range fields {
			if !catalog.HasField(calc.Calculator, field) {
				warnings = append(warnings, fmt.Sprintf("Calculation '%s' sets unknown field '%s' for %s",
					label, field, calc.Calculator))
				continue
			}
			kind := catalog.FieldKind(calc.Calculator, field)
			if warning := ValidateInputValue(label, field, kind, calc.Inputs[field]); warning != "" {
				warnings = append(warnings, warning)
			}
		}
	}

	return warnings
}

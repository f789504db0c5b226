package numparse

import (
	"encoding/json"
	"testing"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"Plain integer", "12", 12},
		{"Decimal", "12.5", 12.5},
		{"Surrounding whitespace", "  7.25 ", 7.25},
		{"Thousands separators", "2,500,000", 2500000},
		{"Negative", "-3", -3},
		{"Scientific notation", "1e3", 1000},
		{"Empty", "", 0},
		{"Whitespace only", "   ", 0},
		{"Garbage", "abc", 0},
		{"Trailing garbage", "12abc", 0},
		{"NaN", "NaN", 0},
		{"Infinity", "Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Float(tt.input); got != tt.expected {
				t.Errorf("Float(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAny(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected float64
	}{
		{"Float", 4.5, 4.5},
		{"Int", 3, 3},
		{"String", "8", 8},
		{"JSON number", json.Number("9.75"), 9.75},
		{"Nil", nil, 0},
		{"Slice", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Any(tt.input); got != tt.expected {
				t.Errorf("Any(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestOr(t *testing.T) {
	if got := Or("", 15); got != 15 {
		t.Errorf("Or(empty) = %v, expected fallback 15", got)
	}
	if got := Or("x", 15); got != 15 {
		t.Errorf("Or(garbage) = %v, expected fallback 15", got)
	}
	if got := Or("10", 15); got != 10 {
		t.Errorf("Or(10) = %v, expected 10", got)
	}
}

func TestFieldsAndFromMap(t *testing.T) {
	fields := FromMap(map[string]interface{}{
		"amount":     2500.5,
		"optionType": "put",
		"count":      3,
		"missing":    nil,
	})

	if got := fields.Float("amount"); got != 2500.5 {
		t.Errorf("amount = %v, expected 2500.5", got)
	}
	if got := fields.Float("count"); got != 3 {
		t.Errorf("count = %v, expected 3", got)
	}
	if got := fields.String("optionType", "call"); got != "put" {
		t.Errorf("optionType = %q, expected put", got)
	}
	if got := fields.String("missing", "call"); got != "call" {
		t.Errorf("missing = %q, expected fallback", got)
	}
	if _, ok := fields["missing"]; ok {
		t.Errorf("nil values should be dropped")
	}
}

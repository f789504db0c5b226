// Package numparse converts free-text form fields into numbers. Anything that
// cannot be read as a finite number becomes zero.
package numparse

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Float parses a free-text numeric field. Empty, malformed, NaN and infinite
// values all yield 0.
func Float(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	return finite(cast.ToFloat64E(strings.ReplaceAll(trimmed, ",", "")))
}

// Any coerces a decoded JSON or YAML value (string, number, bool) into a
// float64 using the same zero-default rule as Float.
func Any(value interface{}) float64 {
	if s, ok := value.(string); ok {
		return Float(s)
	}
	return finite(cast.ToFloat64E(value))
}

func finite(f float64, err error) float64 {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Or returns the parsed value of raw, or fallback when raw parses to zero.
func Or(raw string, fallback float64) float64 {
	if v := Float(raw); v != 0 {
		return v
	}
	return fallback
}

// Fields is a set of raw text inputs keyed by field name.
type Fields map[string]string

// Float parses the named field.
func (f Fields) Float(name string) float64 {
	return Float(f[name])
}

// String returns the trimmed named field, or fallback when it is empty.
func (f Fields) String(name, fallback string) string {
	if v := strings.TrimSpace(f[name]); v != "" {
		return v
	}
	return fallback
}

// FromMap converts a decoded object into raw text fields. Numbers are kept in
// their shortest textual form so that they parse back exactly.
func FromMap(values map[string]interface{}) Fields {
	fields := make(Fields, len(values))
	for key, value := range values {
		if value == nil {
			continue
		}
		fields[key] = cast.ToString(value)
	}
	return fields
}

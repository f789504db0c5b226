// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/finance-tools/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Report is the outcome of one named calculation.
type Report struct {
	Name       string      `json:"name" yaml:"name"`
	Calculator string      `json:"calculator" yaml:"calculator"`
	OK         bool        `json:"ok" yaml:"ok"`
	Result     interface{} `json:"result,omitempty" yaml:"result,omitempty"`
}

// Field is one named value of a result, in declaration order.
type Field struct {
	Key     string
	Value   string
	Number  float64
	Numeric bool
}

// Fields flattens a result struct into its serialized field names and values.
// Encoding through a YAML node keeps the struct's field order.
func Fields(result interface{}) ([]Field, error) {
	if result == nil {
		return nil, nil
	}

	var node yaml.Node
	if err := node.Encode(result); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping result, got kind %d", node.Kind)
	}

	fields := make([]Field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		f := Field{Key: key.Value, Value: value.Value}
		if value.Tag == "!!float" || value.Tag == "!!int" {
			if n, err := strconv.ParseFloat(value.Value, 64); err == nil {
				f.Number = n
				f.Numeric = true
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Write renders reports in the named format.
func Write(w io.Writer, format string, reports []Report) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, reports)
	case constants.OutputFormatCSV:
		return CsvFormat(w, reports)
	case constants.OutputFormatJSON:
		return JSONFormat(w, reports)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, reports)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, reports []Report) error {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		if _, err := fmt.Fprintf(w, "--- Results for %s (%s) ---\n", report.Name, report.Calculator); err != nil {
			return err
		}
		if !report.OK {
			if _, err := fmt.Fprintln(w, "no result: inputs were rejected"); err != nil {
				return err
			}
		} else {
			fields, err := Fields(report.Result)
			if err != nil {
				return err
			}
			width := len("Field")
			for _, f := range fields {
				if len(f.Key) > width {
					width = len(f.Key)
				}
			}
			if _, err := fmt.Fprintf(w, "%-*s | Value\n%-*s | _____\n", width, "Field", width, "_____"); err != nil {
				return err
			}
			for _, f := range fields {
				value := f.Value
				if f.Numeric {
					value = p.Sprintf("%.2f", f.Number)
				}
				if _, err := fmt.Fprintf(w, "%-*s | %s\n", width, f.Key, value); err != nil {
					return err
				}
			}
		}
		if i < len(reports)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat outputs one row per result field in comma-separated value format.
func CsvFormat(w io.Writer, reports []Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"calculation", "calculator", "field", "value"}); err != nil {
		return err
	}
	for _, report := range reports {
		if !report.OK {
			if err := cw.Write([]string{report.Name, report.Calculator, "", ""}); err != nil {
				return err
			}
			continue
		}
		fields, err := Fields(report.Result)
		if err != nil {
			return err
		}
		for _, f := range fields {
			value := f.Value
			if f.Numeric {
				value = strconv.FormatFloat(f.Number, 'f', 2, 64)
			}
			if err := cw.Write([]string{report.Name, report.Calculator, f.Key, value}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the reports as an indented JSON array.
func JSONFormat(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// YAMLFormat outputs the reports as a YAML sequence.
func YAMLFormat(w io.Writer, reports []Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return err
	}
	return enc.Close()
}

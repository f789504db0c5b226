// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/finance-tools/pkg/constants"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatYAML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(OutputFormats, ", "), format)
}

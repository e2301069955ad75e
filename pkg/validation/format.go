// Package validation checks calculator inputs and output options before they
// reach the engines.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"github.com/iwvelando/crunch-the-numbers/pkg/format"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatPDF,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(outputFormat string) error {
	for _, f := range outputFormats {
		if outputFormat == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s", strings.Join(outputFormats, ", "), outputFormat)
}

// ValidateCurrency checks a currency code. An empty code is allowed and means
// the default currency.
func ValidateCurrency(code string) error {
	if code == "" || format.IsSupported(code) {
		return nil
	}
	return fmt.Errorf("unsupported currency %q, expected one of %s", code, strings.Join(format.Codes(), ", "))
}

package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a format name with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// ResolveFormatter returns the formatter for name or an error listing the
// available names and aliases.
func ResolveFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, name, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// GenerateReport renders report in the named format.
func GenerateReport(report *domain.BatchReport, format string) ([]byte, error) {
	f, err := ResolveFormatter(format)
	if err != nil {
		return nil, err
	}
	return f.Format(report)
}

// RenderRules renders the effective regulatory parameters as YAML.
func RenderRules(rules *domain.TaxRules) ([]byte, error) {
	return yaml.Marshal(rules)
}

// SaveRules writes the regulatory parameters to a YAML file.
func SaveRules(rules *domain.TaxRules, filename string) error {
	b, err := RenderRules(rules)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

package output

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/rotisserie/eris"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.BatchReport) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
	// Extension is the file extension used when saving output.
	Extension() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID  string
	Ext string
	F   func(*domain.BatchReport) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.BatchReport) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                 { return ff.ID }
func (ff FormatterFunc) Extension() string                            { return ff.Ext }

// SaveFormatted runs a formatter and writes its output to filename. A
// filename without an extension gets the formatter's extension.
func SaveFormatted(f Formatter, report *domain.BatchReport, filename string) (string, error) {
	if filepath.Ext(filename) == "" {
		filename += "." + f.Extension()
	}
	data, err := f.Format(report)
	if err != nil {
		return "", eris.Wrapf(err, "output: format %s", f.Name())
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", eris.Wrapf(err, "output: write %s", filename)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == name {
			return f
		}
	}
	// try normalized name
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"txt":          "console",
	"human":        "console",
	"csv-summary":  "csv",
	"csv-detailed": "detailed-csv",
	"long-csv":     "detailed-csv",
	"html-report":  "html",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

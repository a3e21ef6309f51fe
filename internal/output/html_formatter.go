package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

// HTMLFormatter produces a printable HTML summary of every case.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"yesno": yesNo,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

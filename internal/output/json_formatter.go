package output

import (
	"encoding/json"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

// JSONFormatter serializes the batch report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

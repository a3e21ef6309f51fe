package output

import (
	"bytes"
	"encoding/csv"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per case,
// in report order). Cells of sections a case does not have are left empty.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

var summaryHeader = []string{
	"RunID", "Case", "TaxYear",
	"TotalWages", "TaxableIncome", "CalculatedTax", "FederalWithheld", "TaxOwed", "TaxBracket",
	"FICARefundEligible", "FICARefund", "NetAmount",
	"DaysPresent", "DaysInYear",
	"VehicleEligible", "VehicleInterest", "DeductibleInterest",
}

func (c CSVSummarizer) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}
	for _, r := range report.Reports {
		if err := w.Write(summaryRow(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func summaryRow(r domain.CaseReport) []string {
	row := make([]string, 0, len(summaryHeader))
	row = append(row, r.RunID, r.Name, intToString(r.TaxYear))

	if t := r.Tax; t != nil {
		row = append(row,
			FormatCents(t.Breakdown.TotalWages),
			FormatCents(t.TaxableIncome),
			FormatCents(t.Breakdown.CalculatedTax),
			FormatCents(t.Breakdown.TotalFederalWithheld),
			FormatCents(t.TaxOwed),
			t.TaxBracketLabel,
			boolToString(t.FICABreakdown.Eligible),
			FormatCents(t.FICABreakdown.RefundAmount),
			FormatCents(t.NetAmount),
		)
	} else {
		row = append(row, make([]string, 9)...)
	}

	if p := r.Presence; p != nil {
		row = append(row, intToString(p.DaysPresent), intToString(p.DaysInYear))
	} else {
		row = append(row, "", "")
	}

	switch {
	case r.Eligibility == nil:
		row = append(row, "", "", "")
	case r.Interest == nil:
		row = append(row, boolToString(r.Eligibility.Eligible), "", "")
	default:
		row = append(row,
			boolToString(r.Eligibility.Eligible),
			FormatCents(r.Interest.TotalInterestForYear),
			FormatCents(r.Interest.DeductibleInterest),
		)
	}
	return row
}

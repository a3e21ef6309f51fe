package output

import (
	"bytes"
	"encoding/csv"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

// CSVDetailedExporter writes every reported figure as a case/section/field/value row.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "csv" }

func (c CSVDetailedExporter) Format(report *domain.BatchReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Case", "Section", "Field", "Value"}); err != nil {
		return nil, err
	}
	for _, r := range report.Reports {
		for _, f := range detailFields(r) {
			if err := w.Write([]string{r.Name, f[0], f[1], f[2]}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// detailFields flattens one case report into section, field, value triples
func detailFields(r domain.CaseReport) [][3]string {
	var out [][3]string
	add := func(section, field, value string) {
		out = append(out, [3]string{section, field, value})
	}

	if t := r.Tax; t != nil {
		b := t.Breakdown
		add("tax", "record_count", intToString(b.RecordCount))
		add("tax", "total_wages", FormatCents(b.TotalWages))
		add("tax", "total_state_tax", FormatCents(b.TotalStateTax))
		add("tax", "state_tax_deduction", FormatCents(b.StateTaxDeduction))
		add("tax", "state_tax_cap_applied", boolToString(b.StateTaxCapApplied))
		add("tax", "taxable_income", FormatCents(t.TaxableIncome))
		add("tax", "calculated_tax", FormatCents(b.CalculatedTax))
		add("tax", "total_federal_withheld", FormatCents(b.TotalFederalWithheld))
		add("tax", "tax_owed", FormatCents(t.TaxOwed))
		add("tax", "tax_bracket", t.TaxBracketLabel)
		add("tax", "bracket_range", t.BracketRange)
		for _, n := range b.Notes {
			add("tax", "note", n)
		}

		f := t.FICABreakdown
		add("fica", "social_security_tax", FormatCents(f.SocialSecurityTax))
		add("fica", "medicare_tax", FormatCents(f.MedicareTax))
		add("fica", "total_fica", FormatCents(f.TotalFICA))
		if f.YearsSinceEntry != nil {
			add("fica", "years_since_entry", intToString(*f.YearsSinceEntry))
		}
		add("fica", "eligible", boolToString(f.Eligible))
		add("fica", "refund_amount", FormatCents(f.RefundAmount))
		add("tax", "net_amount", FormatCents(t.NetAmount))
	}

	if p := r.Presence; p != nil {
		add("presence", "year", intToString(p.Year))
		add("presence", "days_present", intToString(p.DaysPresent))
		add("presence", "days_in_year", intToString(p.DaysInYear))
		add("presence", "skipped_intervals", intToString(p.SkippedIntervals))
	}

	if e := r.Eligibility; e != nil {
		add("vehicle", "eligible", boolToString(e.Eligible))
		for _, reason := range e.Reasons {
			add("vehicle", "reason", reason)
		}
		for _, warn := range e.Warnings {
			add("vehicle", "warning", warn)
		}
	}

	if in := r.Interest; in != nil {
		add("interest", "principal", FormatCents(in.Principal))
		add("interest", "monthly_payment", FormatCents(in.MonthlyPayment))
		add("interest", "payments_in_year", intToString(in.PaymentsInYear))
		add("interest", "total_interest_for_year", FormatCents(in.TotalInterestForYear))
		add("interest", "phaseout_reduction", FormatCents(in.PhaseoutReduction))
		add("interest", "deductible_interest", FormatCents(in.DeductibleInterest))
		add("interest", "remaining_balance", FormatCents(in.RemainingBalance))
	}
	return out
}

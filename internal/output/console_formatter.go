package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a human-readable report, one block per case.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range report.Reports {
		if i > 0 {
			fmt.Fprintln(&buf)
		}
		writeCase(&buf, r)
	}
	return buf.Bytes(), nil
}

const labelWidth = 26

func line(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-*s %s\n", labelWidth, label+":", value)
}

func writeCase(w io.Writer, r domain.CaseReport) {
	title := fmt.Sprintf("NRA TAX SUMMARY: %s (tax year %d)", r.Name, r.TaxYear)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID: %s\n", r.RunID)
	}

	if r.Tax != nil {
		writeTax(w, r.Tax)
	}
	if r.Presence != nil {
		writePresence(w, r.Presence)
	}
	if r.Eligibility != nil {
		writeVehicle(w, r.Eligibility, r.Interest)
	}
}

func writeTax(w io.Writer, t *domain.TaxCalculationResult) {
	b := t.Breakdown
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FEDERAL INCOME TAX")
	line(w, "W-2 records", intToString(b.RecordCount))
	line(w, "Total wages", FormatCurrency(b.TotalWages))
	deduction := FormatCurrency(b.StateTaxDeduction)
	if b.StateTaxCapApplied {
		deduction += fmt.Sprintf(" (capped; %s withheld)", FormatCurrency(b.TotalStateTax))
	}
	line(w, "State tax deduction", deduction)
	line(w, "Taxable income", FormatCurrency(t.TaxableIncome))
	line(w, "Tax bracket", fmt.Sprintf("%s (%s)", t.TaxBracketLabel, t.BracketRange))
	line(w, "Calculated tax", FormatCurrency(b.CalculatedTax))
	line(w, "Federal tax withheld", FormatCurrency(b.TotalFederalWithheld))
	line(w, balanceLabel(t.TaxOwed, "Tax owed", "Overpayment"), FormatCurrency(t.TaxOwed.Abs()))

	f := t.FICABreakdown
	fica := FormatCurrency(f.TotalFICA)
	switch {
	case f.YearsSinceEntry == nil:
		fica += " (entry date unknown)"
	case f.Eligible:
		fica += fmt.Sprintf(" refundable (%d years since entry)", *f.YearsSinceEntry)
	default:
		fica += fmt.Sprintf(" not refundable (%d years since entry)", *f.YearsSinceEntry)
	}
	line(w, "FICA withheld", fica)
	line(w, balanceLabel(t.NetAmount, "Net amount due", "Net refund"), FormatCurrency(t.NetAmount.Abs()))
	for _, n := range b.Notes {
		fmt.Fprintf(w, "  note: %s\n", n)
	}
}

func balanceLabel(v decimal.Decimal, due, refund string) string {
	if v.IsNegative() {
		return refund
	}
	return due
}

func writePresence(w io.Writer, p *domain.PresenceResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PHYSICAL PRESENCE")
	share := decimal.Zero
	if p.DaysInYear > 0 {
		share = decimal.NewFromInt(int64(p.DaysPresent)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(p.DaysInYear)))
	}
	line(w, fmt.Sprintf("Days present in %d", p.Year), fmt.Sprintf("%d of %d (%s)", p.DaysPresent, p.DaysInYear, FormatPercentage(share)))
	if p.SkippedIntervals > 0 {
		line(w, "Skipped travel intervals", intToString(p.SkippedIntervals))
	}
}

func writeVehicle(w io.Writer, e *domain.EligibilityResult, in *domain.InterestCalculationResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "VEHICLE LOAN INTEREST")
	line(w, "Eligible", yesNo(e.Eligible))
	for _, r := range e.Reasons {
		fmt.Fprintf(w, "  - %s\n", r)
	}
	for _, warn := range e.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}
	if in == nil {
		return
	}
	line(w, "Principal", FormatCurrency(in.Principal))
	line(w, "Monthly payment", FormatCurrency(in.MonthlyPayment))
	line(w, fmt.Sprintf("Payments in %d", in.TaxYear), intToString(in.PaymentsInYear))
	line(w, "Interest paid", FormatCurrency(in.TotalInterestForYear))
	if in.PhaseoutReduction.IsPositive() {
		line(w, "Phase-out reduction", FormatCurrency(in.PhaseoutReduction))
	}
	line(w, "Deductible interest", FormatCurrency(in.DeductibleInterest))
	line(w, "Remaining balance", FormatCurrency(in.RemainingBalance))
}

package calculation

import (
	"fmt"
	"time"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/nrtax/nra-tax-calculator/pkg/dateutil"
	money "github.com/nrtax/nra-tax-calculator/pkg/decimal"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// W2Aggregator combines W-2 records into a federal tax position and decides
// whether the filer's withheld FICA is refundable.
type W2Aggregator struct {
	TaxCalc            *BracketTaxCalculator
	SALTCap            decimal.Decimal
	FICARefundMaxYears int
	Logger             Logger
}

// NewW2Aggregator creates an aggregator from configurable rules
func NewW2Aggregator(rules domain.TaxRules) *W2Aggregator {
	return &W2Aggregator{
		TaxCalc:            NewBracketTaxCalculator(rules),
		SALTCap:            rules.SALTCap,
		FICARefundMaxYears: rules.FICARefundMaxYears,
		Logger:             NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (a *W2Aggregator) SetLogger(l Logger) {
	a.Logger = orNop(l)
}

// w2Totals are the summed W-2 boxes across all records
type w2Totals struct {
	wages, stateTax, federalWithheld, socialSecurity, medicare decimal.Decimal
}

// Aggregate sums the records, applies the state-tax cap, computes bracket tax
// and the FICA refund. It fails only when no records are supplied or the tax
// year is missing; unparsable amounts count as zero.
func (a *W2Aggregator) Aggregate(records []domain.IncomeRecord, filing domain.FilingContext) (*domain.TaxCalculationResult, error) {
	if len(records) == 0 {
		return nil, ErrNoIncomeRecords
	}
	if filing.TaxYear <= 0 {
		return nil, eris.Wrapf(ErrInvalidFilingContext, "tax year %d", filing.TaxYear)
	}
	log := orNop(a.Logger)

	totals := a.sum(records)
	var notes []string

	stateTaxDeduction := decimal.Min(totals.stateTax, a.SALTCap)
	capApplied := totals.stateTax.GreaterThan(a.SALTCap)

	unclamped := totals.wages.Sub(stateTaxDeduction)
	taxableIncome := decimal.Max(unclamped, decimal.Zero)
	if unclamped.IsNegative() {
		notes = append(notes, fmt.Sprintf("state tax deduction %s exceeds wages %s; taxable income set to $0.00",
			money.FormatUSD(stateTaxDeduction), money.FormatUSD(totals.wages)))
	}

	bracket := a.TaxCalc.Calculate(taxableIncome)
	taxOwed := money.RoundCents(bracket.Tax.Sub(money.RoundCents(totals.federalWithheld)))

	fica := a.ficaRefund(totals, filing, &notes)
	netAmount := taxOwed.Sub(fica.RefundAmount)

	log.Debugf("w2 aggregate: year=%d records=%d wages=%s taxable=%s tax=%s withheld=%s fica_refund=%s",
		filing.TaxYear, len(records), totals.wages, taxableIncome, bracket.Tax, totals.federalWithheld, fica.RefundAmount)

	return &domain.TaxCalculationResult{
		TaxYear:         filing.TaxYear,
		TaxableIncome:   money.RoundCents(taxableIncome),
		TaxOwed:         taxOwed,
		NetAmount:       netAmount,
		TaxBracketLabel: bracket.Bracket.Label,
		BracketRange:    bracket.BracketRange,
		Breakdown: domain.TaxBreakdown{
			TotalWages:           money.RoundCents(totals.wages),
			TotalStateTax:        money.RoundCents(totals.stateTax),
			StateTaxDeduction:    money.RoundCents(stateTaxDeduction),
			StateTaxCapApplied:   capApplied,
			TotalFederalWithheld: money.RoundCents(totals.federalWithheld),
			CalculatedTax:        bracket.Tax,
			RecordCount:          len(records),
			Notes:                notes,
		},
		FICABreakdown: fica,
	}, nil
}

func (a *W2Aggregator) sum(records []domain.IncomeRecord) w2Totals {
	var t w2Totals
	for i, r := range records {
		t.wages = t.wages.Add(a.amount(i, "wages", r.Wages))
		t.stateTax = t.stateTax.Add(a.amount(i, "state_tax_withheld", r.StateTaxWithheld))
		t.federalWithheld = t.federalWithheld.Add(a.amount(i, "federal_tax_withheld", r.FederalTaxWithheld))
		t.socialSecurity = t.socialSecurity.Add(a.amount(i, "social_security_tax", r.SocialSecurityTax))
		t.medicare = t.medicare.Add(a.amount(i, "medicare_tax", r.MedicareTax))
	}
	return t
}

// amount parses one currency field, degrading to zero when it is unusable.
func (a *W2Aggregator) amount(record int, field, value string) decimal.Decimal {
	m, ok := money.ParseCurrency(value)
	if !ok && value != "" {
		orNop(a.Logger).Debugf("w2 record %d: unparsable %s %q treated as 0", record, field, value)
	}
	return m.Decimal
}

// ficaRefund decides refund eligibility from completed years in the U.S.,
// counted up to December 31 of the tax year.
func (a *W2Aggregator) ficaRefund(t w2Totals, filing domain.FilingContext, notes *[]string) domain.FICABreakdown {
	totalFICA := t.socialSecurity.Add(t.medicare)
	out := domain.FICABreakdown{
		SocialSecurityTax: money.RoundCents(t.socialSecurity),
		MedicareTax:       money.RoundCents(t.medicare),
		TotalFICA:         money.RoundCents(totalFICA),
		RefundAmount:      decimal.Zero,
	}

	entered, err := dateutil.ParseISODate(filing.DateEnteredUS)
	if err != nil {
		orNop(a.Logger).Debugf("fica: entry date %q unusable: %v", filing.DateEnteredUS, err)
		*notes = append(*notes, "U.S. entry date unavailable; FICA refund not evaluated")
		return out
	}

	years := YearsSinceEntry(entered, filing.TaxYear)
	out.YearsSinceEntry = &years
	out.Eligible = years <= a.FICARefundMaxYears && totalFICA.IsPositive()
	if out.Eligible {
		out.RefundAmount = out.TotalFICA
	}
	return out
}

// YearsSinceEntry returns the completed years from the entry date to
// December 31 of taxYear.
func YearsSinceEntry(entered time.Time, taxYear int) int {
	return dateutil.CompletedYears(entered, dateutil.EndOfYear(taxYear))
}

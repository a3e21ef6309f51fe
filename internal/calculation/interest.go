package calculation

import (
	"strings"
	"time"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/nrtax/nra-tax-calculator/pkg/dateutil"
	money "github.com/nrtax/nra-tax-calculator/pkg/decimal"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
)

// amortPhase tags where a scheduled payment falls relative to the tax year
type amortPhase int

const (
	phaseBeforeWindow amortPhase = iota
	phaseInWindow
	phaseDone
)

// schedule holds the fixed terms of an amortizing loan
type schedule struct {
	start       time.Time
	taxYear     int
	term        int
	monthlyRate decimal.Decimal
	payment     decimal.Decimal
}

// amortState is the running state of the month-by-month simulation
type amortState struct {
	phase          amortPhase
	month          int
	balance        decimal.Decimal
	interestInYear decimal.Decimal
	paymentsInYear int
}

// advance applies the next scheduled payment, or moves to phaseDone once the
// loan has matured, been paid off, or the payment falls after the tax year.
func (s amortState) advance(sch schedule) amortState {
	if s.month >= sch.term || !s.balance.IsPositive() {
		s.phase = phaseDone
		return s
	}
	due := dateutil.AddMonths(sch.start, s.month)
	switch {
	case due.Year() < sch.taxYear:
		s.phase = phaseBeforeWindow
	case due.Year() == sch.taxYear:
		s.phase = phaseInWindow
	default:
		s.phase = phaseDone
		return s
	}

	interest := s.balance.Mul(sch.monthlyRate).Round(10)
	principalPaid := decimal.Min(sch.payment.Sub(interest), s.balance)
	s.balance = decimal.Max(s.balance.Sub(principalPaid), decimal.Zero)
	if s.phase == phaseInWindow {
		s.interestInYear = s.interestInYear.Add(interest)
		s.paymentsInYear++
	}
	s.month++
	return s
}

// LevelPayment returns the fixed monthly payment that retires principal over
// n months at monthlyRate. A zero rate spreads the principal evenly.
func LevelPayment(principal, monthlyRate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(n))
	if monthlyRate.IsZero() {
		return principal.Div(months)
	}
	one := decimal.NewFromInt(1)
	growth := one.Add(monthlyRate).Pow(months)
	return principal.Mul(monthlyRate.Mul(growth)).Div(growth.Sub(one))
}

// CalculateInterest simulates the loan from its start date through the tax
// year in filing and returns the year's interest after the statutory cap and
// the income phase-out. It performs no eligibility checks.
func (e *VehicleLoanEngine) CalculateInterest(loan domain.LoanInput, filing domain.FilingContext) (*domain.InterestCalculationResult, error) {
	log := orNop(e.Logger)

	if filing.TaxYear <= 0 {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "tax year %d", filing.TaxYear)
	}
	if loan.LoanTermMonths <= 0 {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "loan term %d months", loan.LoanTermMonths)
	}
	start, err := loanStart(loan)
	if err != nil {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "loan start date %q", loan.LoanStartDate)
	}
	price, ok := money.ParseCurrency(loan.PurchasePrice)
	if !ok {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "purchase price %q", loan.PurchasePrice)
	}
	down, ok := money.ParseCurrency(loan.DownPayment)
	if !ok && loan.DownPayment != "" {
		log.Debugf("vehicle: down payment %q unparsable, treated as 0", loan.DownPayment)
	}
	principal := price.Sub(down).Decimal
	if !principal.IsPositive() {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "principal %s must be positive", principal.StringFixed(2))
	}
	apr, ok := parsePercent(loan.APR)
	if !ok || apr.IsNegative() {
		return nil, eris.Wrapf(ErrInvalidLoanInput, "APR %q", loan.APR)
	}

	monthlyRate := apr.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
	payment := LevelPayment(principal, monthlyRate, loan.LoanTermMonths)
	if loan.MonthlyPayment != "" {
		if given, ok := money.ParseCurrency(loan.MonthlyPayment); ok && given.IsPositive() {
			payment = given.Decimal
		} else {
			log.Debugf("vehicle: monthly payment %q unusable, computed payment used", loan.MonthlyPayment)
		}
	}

	sch := schedule{
		start:       start,
		taxYear:     filing.TaxYear,
		term:        loan.LoanTermMonths,
		monthlyRate: monthlyRate,
		payment:     payment,
	}
	state := amortState{balance: principal}
	for state.phase != phaseDone {
		state = state.advance(sch)
	}

	totalInterest := money.RoundCents(state.interestInYear)
	magi, ok := money.ParseCurrency(filing.ModifiedAGI)
	if !ok && filing.ModifiedAGI != "" {
		log.Debugf("vehicle: MAGI %q unparsable, treated as 0", filing.ModifiedAGI)
	}
	deductible, reduction := e.ApplyInterestLimits(totalInterest, filing.FilingStatus, magi.Decimal)

	log.Debugf("vehicle: year=%d principal=%s payment=%s payments_in_year=%d interest=%s deductible=%s",
		filing.TaxYear, principal, payment, state.paymentsInYear, totalInterest, deductible)

	return &domain.InterestCalculationResult{
		TaxYear:              filing.TaxYear,
		Principal:            money.RoundCents(principal),
		MonthlyPayment:       money.RoundCents(payment),
		TotalInterestForYear: totalInterest,
		DeductibleInterest:   deductible,
		PhaseoutReduction:    reduction,
		RemainingBalance:     money.RoundCents(state.balance),
		PaymentsInYear:       state.paymentsInYear,
	}, nil
}

// ApplyInterestLimits caps the year's interest and applies the MAGI phase-out
// for the filing status, matched case-insensitively with a blank status read
// as SINGLE. It returns the deductible amount and the reduction.
func (e *VehicleLoanEngine) ApplyInterestLimits(totalInterest decimal.Decimal, status domain.FilingStatus, magi decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	deductible := decimal.Min(totalInterest, e.Rules.InterestCap)

	reduction := decimal.Zero
	if threshold, ok := e.Rules.PhaseoutThresholds[status.Normalize()]; ok && magi.GreaterThan(threshold) {
		reduction = decimal.Min(deductible, magi.Sub(threshold).Mul(e.Rules.PhaseoutRate))
	}
	deductible = decimal.Max(deductible.Sub(reduction), decimal.Zero)
	return money.RoundCents(deductible), money.RoundCents(reduction)
}

// parsePercent parses "6.5" or "6.5%" into 6.5
func parsePercent(value string) (decimal.Decimal, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(value), "%")
	m, ok := money.ParseCurrency(s)
	return m.Decimal, ok
}

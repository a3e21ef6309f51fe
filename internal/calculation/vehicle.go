package calculation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/nrtax/nra-tax-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// VehicleLoanEngine decides whether a vehicle loan qualifies for the
// passenger-vehicle interest deduction and computes the deductible interest.
type VehicleLoanEngine struct {
	Rules  domain.VehicleLoanRules
	Logger Logger
}

// NewVehicleLoanEngine creates an engine with configurable rules; zero-valued
// rules fall back to the built-in 2025-2028 values.
func NewVehicleLoanEngine(rules domain.VehicleLoanRules) *VehicleLoanEngine {
	if rules.FirstTaxYear == 0 && rules.LastTaxYear == 0 {
		rules = domain.DefaultVehicleLoanRules()
	}
	return &VehicleLoanEngine{Rules: rules, Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (e *VehicleLoanEngine) SetLogger(l Logger) {
	e.Logger = orNop(l)
}

// CheckEligibility evaluates every eligibility criterion and collects all
// disqualifying reasons and warnings. Only the tax-year window check ends the
// evaluation early. Dates or GVWR values that cannot be parsed make their
// check inconclusive, and the check is skipped.
func (e *VehicleLoanEngine) CheckEligibility(taxYear int, loan domain.LoanInput, facts domain.VehicleFacts, flags domain.LoanFlags) domain.EligibilityResult {
	log := orNop(e.Logger)
	r := e.Rules
	reasons := []string{}
	warnings := []string{}

	if taxYear < r.FirstTaxYear || taxYear > r.LastTaxYear {
		return domain.EligibilityResult{
			Eligible: false,
			Reasons:  []string{fmt.Sprintf("Tax year %d is outside the %d-%d deduction window", taxYear, r.FirstTaxYear, r.LastTaxYear)},
			Warnings: warnings,
		}
	}

	cutoff, cutoffErr := dateutil.ParseISODate(r.CutoffDate)
	if cutoffErr != nil {
		log.Warnf("vehicle: cutoff date %q unusable, origination checks skipped: %v", r.CutoffDate, cutoffErr)
	}
	afterCutoff := func(label, value string) {
		if cutoffErr != nil || value == "" {
			return
		}
		d, err := dateutil.ParseISODate(value)
		if err != nil {
			log.Debugf("vehicle: %s %q unparsable, check skipped", label, value)
			return
		}
		if !d.After(cutoff) {
			reasons = append(reasons, fmt.Sprintf("%s %s is not after %s", capitalize(label), d.Format(dateutil.ISODate), cutoff.Format(dateutil.ISODate)))
		}
	}
	afterCutoff("loan start date", loan.LoanStartDate)
	afterCutoff("vehicle purchase date", facts.PurchaseDate)

	if flags.IsLease {
		reasons = append(reasons, "Leased vehicles do not qualify")
	}
	if !flags.PersonalUse {
		reasons = append(reasons, "Vehicle must be purchased for personal use")
	}
	if !flags.SecuredByLien {
		reasons = append(reasons, "Loan must be secured by a first lien on the vehicle")
	}
	if flags.IsUsedVehicle {
		reasons = append(reasons, "Used vehicles do not qualify; original use must begin with the taxpayer")
	}

	if !e.bodyClassAllowed(facts.VehicleType) {
		if strings.TrimSpace(facts.VehicleType) == "" {
			warnings = append(warnings, "Vehicle type is unknown; confirm it is a car, minivan, van, SUV, pickup truck or motorcycle")
		} else {
			warnings = append(warnings, fmt.Sprintf("Vehicle type %q may not be a qualifying passenger vehicle", facts.VehicleType))
		}
	}

	if lbs, ok := ParseGVWRPounds(facts.GVWR); ok {
		if lbs.GreaterThanOrEqual(r.MaxGVWRPounds) {
			reasons = append(reasons, fmt.Sprintf("Gross vehicle weight rating %s lbs must be under %s lbs", lbs.String(), r.MaxGVWRPounds.String()))
		}
	} else if facts.GVWR != "" {
		log.Debugf("vehicle: GVWR %q unparsable, check skipped", facts.GVWR)
	}

	switch {
	case facts.AssembledInUSA == nil:
		warnings = append(warnings, "Final assembly location could not be verified; it must be in the United States")
	case !*facts.AssembledInUSA:
		reasons = append(reasons, "Final assembly must occur in the United States")
	}

	return domain.EligibilityResult{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
		Warnings: warnings,
	}
}

func (e *VehicleLoanEngine) bodyClassAllowed(vehicleType string) bool {
	vt := strings.ToLower(strings.TrimSpace(vehicleType))
	if vt == "" {
		return false
	}
	for _, class := range e.Rules.EligibleBodyClasses {
		if class != "" && strings.Contains(vt, strings.ToLower(class)) {
			return true
		}
	}
	return false
}

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	gvwrNumber    = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
)

// ParseGVWRPounds extracts a weight in pounds from strings like "8,500 lbs" or
// "Class 2E: 6,001 - 7,000 lb (2,722 - 3,175 kg)". Parenthesized conversions
// are ignored and the largest remaining figure is used.
func ParseGVWRPounds(gvwr string) (decimal.Decimal, bool) {
	s := parenthesized.ReplaceAllString(gvwr, " ")
	var best decimal.Decimal
	found := false
	for _, tok := range gvwrNumber.FindAllString(s, -1) {
		d, err := decimal.NewFromString(strings.ReplaceAll(tok, ",", ""))
		if err != nil {
			continue
		}
		if !found || d.GreaterThan(best) {
			best, found = d, true
		}
	}
	return best, found
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// loanStart parses the loan start date of a LoanInput
func loanStart(loan domain.LoanInput) (time.Time, error) {
	return dateutil.ParseISODate(loan.LoanStartDate)
}

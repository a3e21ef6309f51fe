package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nrtax/nra-tax-calculator/internal/calculation"
	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of case files and rules files.
// DefaultTaxYear fills in a case without a filing tax year; with
// OverrideTaxYear set it replaces the case's year as well.
type InputParser struct {
	DefaultTaxYear  int
	OverrideTaxYear bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadCaseFile loads a case from a YAML or JSON file. A case without a name
// is named after the file.
func (ip *InputParser) LoadCaseFile(filename string) (*domain.CaseFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read file %s", filename)
	}

	c, err := ip.ParseCase(data)
	if err != nil {
		return nil, eris.Wrapf(err, "case file %s", filename)
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return c, nil
}

// ParseCase decodes and validates a case document
func (ip *InputParser) ParseCase(data []byte) (*domain.CaseFile, error) {
	var c domain.CaseFile
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "failed to parse YAML")
	}
	if err := ip.ValidateCase(&c); err != nil {
		return nil, eris.Wrap(err, "case validation failed")
	}
	return &c, nil
}

// ValidateCase rejects structurally malformed cases and fills in defaults.
// Currency and date formatting is not checked here; the calculators degrade
// unusable fields on their own.
func (ip *InputParser) ValidateCase(c *domain.CaseFile) error {
	if ip.DefaultTaxYear > 0 && (ip.OverrideTaxYear || c.Filing.TaxYear == 0) {
		c.Filing.TaxYear = ip.DefaultTaxYear
	}
	if err := ip.validateFiling(&c.Filing); err != nil {
		return eris.Wrap(err, "filing")
	}

	if c.Presence != nil {
		if c.Presence.Year == 0 {
			c.Presence.Year = c.Filing.TaxYear
		}
		if c.Presence.Year < 0 {
			return eris.Errorf("presence: year %d is invalid", c.Presence.Year)
		}
		if strings.TrimSpace(c.Presence.InitialEntryDate) == "" {
			return eris.New("presence: initial entry date is required")
		}
	}

	if c.Vehicle != nil {
		if err := ip.validateLoan(&c.Vehicle.Loan); err != nil {
			return eris.Wrap(err, "vehicle")
		}
	}

	if len(c.W2s) == 0 && c.Presence == nil && c.Vehicle == nil {
		return eris.New("case has no w2s, presence or vehicle section")
	}
	return nil
}

// validateFiling checks the filer-level facts. An omitted filing status
// defaults to SINGLE.
func (ip *InputParser) validateFiling(f *domain.FilingContext) error {
	if f.TaxYear <= 0 {
		return eris.New("tax year is required")
	}
	f.FilingStatus = f.FilingStatus.Normalize()
	if !f.FilingStatus.Valid() {
		return eris.Errorf("unknown filing status %q", f.FilingStatus)
	}
	return nil
}

// validateLoan checks the loan fields the interest simulation cannot run without
func (ip *InputParser) validateLoan(l *domain.LoanInput) error {
	if strings.TrimSpace(l.PurchasePrice) == "" {
		return eris.New("purchase price is required")
	}
	if l.LoanTermMonths <= 0 {
		return eris.Errorf("loan term must be positive, got %d months", l.LoanTermMonths)
	}
	if strings.TrimSpace(l.LoanStartDate) == "" {
		return eris.New("loan start date is required")
	}
	if strings.TrimSpace(l.APR) == "" {
		return eris.New("APR is required")
	}
	return nil
}

// LoadRulesFile loads regulatory parameters from a YAML file on top of the
// built-in defaults. Keys absent from the file keep their default values; a
// brackets list replaces the default table entirely.
func (ip *InputParser) LoadRulesFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read file %s", filename)
	}

	rules := domain.DefaultTaxRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, eris.Wrapf(err, "failed to parse rules %s", filename)
	}
	if err := ip.ValidateRules(&rules); err != nil {
		return nil, eris.Wrapf(err, "rules %s validation failed", filename)
	}
	return &rules, nil
}

// ValidateRules validates regulatory parameters
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.TaxYear <= 0 {
		return eris.New("tax year is required")
	}
	if err := calculation.ValidateBrackets(rules.Brackets); err != nil {
		return eris.Wrap(err, "brackets")
	}
	if rules.SALTCap.IsNegative() {
		return eris.New("salt cap cannot be negative")
	}
	if rules.FICARefundMaxYears < 0 {
		return eris.New("FICA refund max years cannot be negative")
	}

	v := rules.VehicleLoan
	if v.FirstTaxYear > v.LastTaxYear {
		return eris.Errorf("vehicle loan: first tax year %d after last tax year %d", v.FirstTaxYear, v.LastTaxYear)
	}
	if v.InterestCap.IsNegative() {
		return eris.New("vehicle loan: interest cap cannot be negative")
	}
	if v.PhaseoutRate.IsNegative() || v.PhaseoutRate.GreaterThan(decimal.NewFromInt(1)) {
		return eris.New("vehicle loan: phase-out rate must be between 0 and 1")
	}
	for status, threshold := range v.PhaseoutThresholds {
		if !status.Valid() {
			return eris.Errorf("vehicle loan: unknown filing status %q in phase-out thresholds", status)
		}
		if threshold.IsNegative() {
			return eris.Errorf("vehicle loan: phase-out threshold for %s cannot be negative", status)
		}
	}
	if !v.MaxGVWRPounds.IsPositive() {
		return eris.New("vehicle loan: max GVWR must be positive")
	}
	return nil
}

// CreateExampleCase creates an example case exercising every section
func (ip *InputParser) CreateExampleCase() *domain.CaseFile {
	assembled := true
	return &domain.CaseFile{
		Name: "Example J-1 Researcher 2025",
		Filing: domain.FilingContext{
			TaxYear:       2025,
			FilingStatus:  domain.FilingSingle,
			ModifiedAGI:   "52000",
			DateEnteredUS: "2024-03-01",
		},
		W2s: []domain.IncomeRecord{
			{
				Employer:           "State University",
				Wages:              "$42,000.00",
				FederalTaxWithheld: "$3,400.00",
				SocialSecurityTax:  "$2,604.00",
				MedicareTax:        "$609.00",
				StateTaxWithheld:   "$2,100.00",
			},
			{
				Employer:           "Research Foundation",
				Wages:              "$8,000.00",
				FederalTaxWithheld: "$600.00",
				SocialSecurityTax:  "$496.00",
				MedicareTax:        "$116.00",
				StateTaxWithheld:   "$900.00",
			},
		},
		Presence: &domain.PresenceQuery{
			Year:             2025,
			InitialEntryDate: "2024-03-01",
			Intervals: []domain.ExitEntryInterval{
				{ExitDate: "2025-06-01", EntryDate: "2025-06-15"},
			},
		},
		Vehicle: &domain.VehicleCase{
			Loan: domain.LoanInput{
				PurchasePrice:  "$35,000",
				DownPayment:    "$5,000",
				LoanTermMonths: 60,
				APR:            "6%",
				LoanStartDate:  "2025-01-15",
			},
			Facts: domain.VehicleFacts{
				VehicleType:    "Sedan",
				GVWR:           "Class 1D: 5,001 - 6,000 lb (2,268 - 2,722 kg)",
				AssembledInUSA: &assembled,
				PurchaseDate:   "2025-01-15",
			},
			Flags: domain.LoanFlags{
				PersonalUse:   true,
				SecuredByLien: true,
			},
		},
	}
}

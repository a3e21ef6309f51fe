package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus is the federal filing status of the taxpayer
type FilingStatus string

const (
	FilingSingle          FilingStatus = "SINGLE"
	FilingMarriedJoint    FilingStatus = "MARRIED_JOINT"
	FilingMarriedSeparate FilingStatus = "MARRIED_SEPARATE"
	FilingHeadOfHousehold FilingStatus = "HEAD_OF_HOUSEHOLD"
)

// Valid reports whether s is one of the known filing statuses
func (s FilingStatus) Valid() bool {
	switch s {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold:
		return true
	}
	return false
}

// Normalize upper-cases and trims s. A blank status is SINGLE.
func (s FilingStatus) Normalize() FilingStatus {
	n := FilingStatus(strings.ToUpper(strings.TrimSpace(string(s))))
	if n == "" {
		return FilingSingle
	}
	return n
}

// TaxBracket represents one row of a progressive federal bracket table.
// A nil Max marks the unbounded top bracket.
type TaxBracket struct {
	Min   decimal.Decimal  `yaml:"min" json:"min"`
	Max   *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
	Label string           `yaml:"label" json:"label"`
}

// Unbounded reports whether the bracket has no upper threshold
func (b TaxBracket) Unbounded() bool {
	return b.Max == nil
}

// IncomeRecord is a single W-2 as supplied by the form layer. Amounts may be
// plain numbers or decorated strings such as "$1,234.56".
type IncomeRecord struct {
	Employer           string `yaml:"employer,omitempty" json:"employer,omitempty"`
	Wages              string `yaml:"wages" json:"wages"`                               // Box 1
	FederalTaxWithheld string `yaml:"federal_tax_withheld" json:"federal_tax_withheld"` // Box 2
	SocialSecurityTax  string `yaml:"social_security_tax" json:"social_security_tax"`   // Box 4
	MedicareTax        string `yaml:"medicare_tax" json:"medicare_tax"`                 // Box 6
	StateTaxWithheld   string `yaml:"state_tax_withheld" json:"state_tax_withheld"`     // Box 17
}

// FilingContext carries the filer-level facts shared by every calculation
type FilingContext struct {
	TaxYear       int          `yaml:"tax_year" json:"tax_year"`
	FilingStatus  FilingStatus `yaml:"filing_status" json:"filing_status"`
	ModifiedAGI   string       `yaml:"modified_agi,omitempty" json:"modified_agi,omitempty"`
	DateEnteredUS string       `yaml:"date_entered_us,omitempty" json:"date_entered_us,omitempty"` // ISO 8601
}

// BracketTaxResult is the outcome of applying the bracket table to taxable income
type BracketTaxResult struct {
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	Tax           decimal.Decimal `json:"tax"`
	Bracket       TaxBracket      `json:"bracket"`
	BracketRange  string          `json:"bracket_range"`
}

// TaxBreakdown details how taxable income and tax owed were derived
type TaxBreakdown struct {
	TotalWages           decimal.Decimal `json:"total_wages"`
	TotalStateTax        decimal.Decimal `json:"total_state_tax"`
	StateTaxDeduction    decimal.Decimal `json:"state_tax_deduction"`
	StateTaxCapApplied   bool            `json:"state_tax_cap_applied"`
	TotalFederalWithheld decimal.Decimal `json:"total_federal_withheld"`
	CalculatedTax        decimal.Decimal `json:"calculated_tax"`
	RecordCount          int             `json:"record_count"`
	Notes                []string        `json:"notes,omitempty"`
}

// FICABreakdown details the payroll-tax refund determination
type FICABreakdown struct {
	SocialSecurityTax decimal.Decimal `json:"social_security_tax"`
	MedicareTax       decimal.Decimal `json:"medicare_tax"`
	TotalFICA         decimal.Decimal `json:"total_fica"`
	YearsSinceEntry   *int            `json:"years_since_entry,omitempty"` // nil when the entry date is unknown
	Eligible          bool            `json:"eligible"`
	RefundAmount      decimal.Decimal `json:"refund_amount"`
}

// TaxCalculationResult is the aggregated W-2 outcome handed to the document layer.
// NetAmount may be negative, meaning a refund is due.
type TaxCalculationResult struct {
	TaxYear         int             `json:"tax_year"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	TaxOwed         decimal.Decimal `json:"tax_owed"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	TaxBracketLabel string          `json:"tax_bracket_label"`
	BracketRange    string          `json:"bracket_range"`
	Breakdown       TaxBreakdown    `json:"breakdown"`
	FICABreakdown   FICABreakdown   `json:"fica_breakdown"`
}

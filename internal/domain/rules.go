package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains all regulatory values used by the engine. The defaults
// describe tax year 2025 and may be overridden from a rules YAML file.
type TaxRules struct {
	TaxYear int `yaml:"tax_year" json:"tax_year"`

	// Progressive federal brackets, ascending and contiguous, top bracket unbounded
	Brackets []TaxBracket `yaml:"brackets" json:"brackets"`

	// Ceiling on the state-tax deduction (SALT cap)
	SALTCap decimal.Decimal `yaml:"salt_cap" json:"salt_cap"`

	// FICA is refundable while the filer has been in the U.S. at most this many years
	FICARefundMaxYears int `yaml:"fica_refund_max_years" json:"fica_refund_max_years"`

	VehicleLoan VehicleLoanRules `yaml:"vehicle_loan" json:"vehicle_loan"`
}

// VehicleLoanRules contains the qualified passenger-vehicle loan interest rules
type VehicleLoanRules struct {
	FirstTaxYear int    `yaml:"first_tax_year" json:"first_tax_year"`
	LastTaxYear  int    `yaml:"last_tax_year" json:"last_tax_year"`
	CutoffDate   string `yaml:"cutoff_date" json:"cutoff_date"` // loans must originate strictly after this date

	InterestCap decimal.Decimal `yaml:"interest_cap" json:"interest_cap"`

	// MAGI above the threshold reduces the deduction by PhaseoutRate per dollar
	PhaseoutThresholds map[FilingStatus]decimal.Decimal `yaml:"phaseout_thresholds" json:"phaseout_thresholds"`
	PhaseoutRate       decimal.Decimal                  `yaml:"phaseout_rate" json:"phaseout_rate"`

	// Vehicles rated at or above this GVWR (pounds) do not qualify
	MaxGVWRPounds decimal.Decimal `yaml:"max_gvwr_pounds" json:"max_gvwr_pounds"`

	// Body-class keywords that identify qualifying vehicle types
	EligibleBodyClasses []string `yaml:"eligible_body_classes" json:"eligible_body_classes"`
}

func bracketMax(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultBrackets2025 returns the 2025 single-filer bracket table
func DefaultBrackets2025() []TaxBracket {
	return []TaxBracket{
		{Min: decimal.Zero, Max: bracketMax(11925), Rate: decimal.NewFromFloat(0.10), Label: "10%"},
		{Min: decimal.NewFromInt(11925), Max: bracketMax(48475), Rate: decimal.NewFromFloat(0.12), Label: "12%"},
		{Min: decimal.NewFromInt(48475), Max: bracketMax(103350), Rate: decimal.NewFromFloat(0.22), Label: "22%"},
		{Min: decimal.NewFromInt(103350), Max: bracketMax(197300), Rate: decimal.NewFromFloat(0.24), Label: "24%"},
		{Min: decimal.NewFromInt(197300), Max: bracketMax(250525), Rate: decimal.NewFromFloat(0.32), Label: "32%"},
		{Min: decimal.NewFromInt(250525), Max: bracketMax(626350), Rate: decimal.NewFromFloat(0.35), Label: "35%"},
		{Min: decimal.NewFromInt(626350), Max: nil, Rate: decimal.NewFromFloat(0.37), Label: "37%"},
	}
}

// DefaultVehicleLoanRules returns the vehicle loan interest rules for 2025-2028
func DefaultVehicleLoanRules() VehicleLoanRules {
	return VehicleLoanRules{
		FirstTaxYear: 2025,
		LastTaxYear:  2028,
		CutoffDate:   "2024-12-31",
		InterestCap:  decimal.NewFromInt(10000),
		PhaseoutThresholds: map[FilingStatus]decimal.Decimal{
			FilingSingle:       decimal.NewFromInt(100000),
			FilingMarriedJoint: decimal.NewFromInt(200000),
		},
		PhaseoutRate:  decimal.NewFromFloat(0.5),
		MaxGVWRPounds: decimal.NewFromInt(14000),
		EligibleBodyClasses: []string{
			"car", "sedan", "coupe", "convertible", "hatchback", "wagon",
			"suv", "sport utility", "crossover", "minivan", "van",
			"pickup", "truck", "motorcycle",
		},
	}
}

// DefaultTaxRules returns the built-in 2025 rules
func DefaultTaxRules() TaxRules {
	return TaxRules{
		TaxYear:            2025,
		Brackets:           DefaultBrackets2025(),
		SALTCap:            decimal.NewFromInt(10000),
		FICARefundMaxYears: 5,
		VehicleLoan:        DefaultVehicleLoanRules(),
	}
}

package domain

import (
	"github.com/shopspring/decimal"
)

// LoanInput describes the financing of a vehicle purchase. Amounts may be
// plain numbers or decorated strings; APR is a percentage such as "6.5" or "6.5%".
type LoanInput struct {
	PurchasePrice  string `yaml:"purchase_price" json:"purchase_price"`
	DownPayment    string `yaml:"down_payment,omitempty" json:"down_payment,omitempty"`
	LoanTermMonths int    `yaml:"loan_term_months" json:"loan_term_months"`
	APR            string `yaml:"apr" json:"apr"`
	MonthlyPayment string `yaml:"monthly_payment,omitempty" json:"monthly_payment,omitempty"` // computed when empty
	LoanStartDate  string `yaml:"loan_start_date" json:"loan_start_date"`                     // ISO 8601
}

// VehicleFacts are the decoded vehicle attributes. AssembledInUSA is a
// tri-state: nil means the assembly location could not be determined.
type VehicleFacts struct {
	VehicleType    string `yaml:"vehicle_type" json:"vehicle_type"`
	GVWR           string `yaml:"gvwr" json:"gvwr"`
	AssembledInUSA *bool  `yaml:"assembled_in_usa,omitempty" json:"assembled_in_usa,omitempty"`
	PurchaseDate   string `yaml:"purchase_date,omitempty" json:"purchase_date,omitempty"`
}

// LoanFlags are the yes/no answers about the loan
type LoanFlags struct {
	IsLease       bool `yaml:"is_lease" json:"is_lease"`
	PersonalUse   bool `yaml:"personal_use" json:"personal_use"`
	SecuredByLien bool `yaml:"secured_by_lien" json:"secured_by_lien"`
	IsUsedVehicle bool `yaml:"is_used_vehicle" json:"is_used_vehicle"`
}

// EligibilityResult is a structured eligibility decision. Reasons are
// disqualifying; warnings are informational only.
type EligibilityResult struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons"`
	Warnings []string `json:"warnings"`
}

// InterestCalculationResult is the loan-interest deduction for one tax year.
// All monetary fields are rounded to cents.
type InterestCalculationResult struct {
	TaxYear              int             `json:"tax_year"`
	Principal            decimal.Decimal `json:"principal"`
	MonthlyPayment       decimal.Decimal `json:"monthly_payment"`
	TotalInterestForYear decimal.Decimal `json:"total_interest_for_year"`
	DeductibleInterest   decimal.Decimal `json:"deductible_interest"`
	PhaseoutReduction    decimal.Decimal `json:"phaseout_reduction"`
	RemainingBalance     decimal.Decimal `json:"remaining_balance"`
	PaymentsInYear       int             `json:"payments_in_year"`
}

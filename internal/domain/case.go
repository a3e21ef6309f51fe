package domain

// CaseFile holds every resolved fact the form layer collected for one filer.
// Sections other than Filing are optional; only present ones are calculated.
type CaseFile struct {
	Name     string         `yaml:"name" json:"name"`
	Filing   FilingContext  `yaml:"filing" json:"filing"`
	W2s      []IncomeRecord `yaml:"w2s,omitempty" json:"w2s,omitempty"`
	Presence *PresenceQuery `yaml:"presence,omitempty" json:"presence,omitempty"`
	Vehicle  *VehicleCase   `yaml:"vehicle,omitempty" json:"vehicle,omitempty"`
}

// VehicleCase groups the facts used by the vehicle loan interest deduction
type VehicleCase struct {
	Loan  LoanInput    `yaml:"loan" json:"loan"`
	Facts VehicleFacts `yaml:"facts" json:"facts"`
	Flags LoanFlags    `yaml:"flags" json:"flags"`
}

// CaseReport collects the results calculated for one CaseFile
type CaseReport struct {
	RunID       string                     `json:"run_id"`
	Name        string                     `json:"name"`
	TaxYear     int                        `json:"tax_year"`
	Tax         *TaxCalculationResult      `json:"tax,omitempty"`
	Presence    *PresenceResult            `json:"presence,omitempty"`
	Eligibility *EligibilityResult         `json:"eligibility,omitempty"`
	Interest    *InterestCalculationResult `json:"interest,omitempty"`
}

// BatchReport collects the reports of several case files in input order
type BatchReport struct {
	Reports []CaseReport `json:"reports"`
}

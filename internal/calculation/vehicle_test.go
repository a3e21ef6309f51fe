package calculation

import (
	"testing"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func qualifyingLoan() (domain.LoanInput, domain.VehicleFacts, domain.LoanFlags) {
	loan := domain.LoanInput{
		PurchasePrice:  "35000",
		DownPayment:    "5000",
		LoanTermMonths: 60,
		APR:            "6",
		LoanStartDate:  "2025-01-15",
	}
	facts := domain.VehicleFacts{
		VehicleType:    "Sedan",
		GVWR:           "8,500 lbs",
		AssembledInUSA: boolPtr(true),
	}
	flags := domain.LoanFlags{PersonalUse: true, SecuredByLien: true}
	return loan, facts, flags
}

func TestCheckEligibility_Qualifying(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	loan, facts, flags := qualifyingLoan()

	result := engine.CheckEligibility(2025, loan, facts, flags)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.Reasons)
	assert.NotNil(t, result.Warnings)
}

func TestCheckEligibility_SingleDisqualifiers(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*domain.LoanInput, *domain.VehicleFacts, *domain.LoanFlags)
		wantReason string
	}{
		{
			name:       "loan originated on cutoff",
			mutate:     func(l *domain.LoanInput, _ *domain.VehicleFacts, _ *domain.LoanFlags) { l.LoanStartDate = "2024-12-31" },
			wantReason: "Loan start date 2024-12-31 is not after 2024-12-31",
		},
		{
			name:       "purchased before cutoff",
			mutate:     func(_ *domain.LoanInput, f *domain.VehicleFacts, _ *domain.LoanFlags) { f.PurchaseDate = "2024-11-02" },
			wantReason: "Vehicle purchase date 2024-11-02 is not after 2024-12-31",
		},
		{
			name:       "lease",
			mutate:     func(_ *domain.LoanInput, _ *domain.VehicleFacts, fl *domain.LoanFlags) { fl.IsLease = true },
			wantReason: "Leased vehicles do not qualify",
		},
		{
			name:       "business use",
			mutate:     func(_ *domain.LoanInput, _ *domain.VehicleFacts, fl *domain.LoanFlags) { fl.PersonalUse = false },
			wantReason: "Vehicle must be purchased for personal use",
		},
		{
			name:       "unsecured loan",
			mutate:     func(_ *domain.LoanInput, _ *domain.VehicleFacts, fl *domain.LoanFlags) { fl.SecuredByLien = false },
			wantReason: "Loan must be secured by a first lien on the vehicle",
		},
		{
			name:       "used vehicle",
			mutate:     func(_ *domain.LoanInput, _ *domain.VehicleFacts, fl *domain.LoanFlags) { fl.IsUsedVehicle = true },
			wantReason: "Used vehicles do not qualify; original use must begin with the taxpayer",
		},
		{
			name:       "heavy vehicle",
			mutate:     func(_ *domain.LoanInput, f *domain.VehicleFacts, _ *domain.LoanFlags) { f.GVWR = "14,000 lbs" },
			wantReason: "Gross vehicle weight rating 14000 lbs must be under 14000 lbs",
		},
		{
			name:       "assembled abroad",
			mutate:     func(_ *domain.LoanInput, f *domain.VehicleFacts, _ *domain.LoanFlags) { f.AssembledInUSA = boolPtr(false) },
			wantReason: "Final assembly must occur in the United States",
		},
	}

	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan, facts, flags := qualifyingLoan()
			tt.mutate(&loan, &facts, &flags)

			result := engine.CheckEligibility(2025, loan, facts, flags)
			assert.False(t, result.Eligible)
			assert.Equal(t, []string{tt.wantReason}, result.Reasons)
		})
	}
}

func TestCheckEligibility_CollectsAllReasons(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	loan, facts, _ := qualifyingLoan()
	flags := domain.LoanFlags{IsLease: true, IsUsedVehicle: true}

	result := engine.CheckEligibility(2026, loan, facts, flags)
	assert.False(t, result.Eligible)
	assert.Len(t, result.Reasons, 4)
}

func TestCheckEligibility_TaxYearWindow(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	loan, facts, flags := qualifyingLoan()

	for _, year := range []int{2024, 2029} {
		result := engine.CheckEligibility(year, loan, facts, flags)
		assert.False(t, result.Eligible, "year %d", year)
		require.Len(t, result.Reasons, 1)
		assert.Contains(t, result.Reasons[0], "outside the 2025-2028 deduction window")
	}
	for _, year := range []int{2025, 2028} {
		assert.True(t, engine.CheckEligibility(year, loan, facts, flags).Eligible, "year %d", year)
	}
}

func TestCheckEligibility_WarningsDoNotDisqualify(t *testing.T) {
	tests := []struct {
		name        string
		facts       domain.VehicleFacts
		wantWarning string
	}{
		{
			name:        "unknown assembly location",
			facts:       domain.VehicleFacts{VehicleType: "Pickup", GVWR: "7,000 lbs"},
			wantWarning: "Final assembly location could not be verified; it must be in the United States",
		},
		{
			name:        "unlisted body class",
			facts:       domain.VehicleFacts{VehicleType: "Motorhome", GVWR: "7,000 lbs", AssembledInUSA: boolPtr(true)},
			wantWarning: `Vehicle type "Motorhome" may not be a qualifying passenger vehicle`,
		},
		{
			name:        "missing body class",
			facts:       domain.VehicleFacts{GVWR: "7,000 lbs", AssembledInUSA: boolPtr(true)},
			wantWarning: "Vehicle type is unknown; confirm it is a car, minivan, van, SUV, pickup truck or motorcycle",
		},
	}

	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loan, _, flags := qualifyingLoan()
			result := engine.CheckEligibility(2025, loan, tt.facts, flags)
			assert.True(t, result.Eligible)
			assert.Empty(t, result.Reasons)
			assert.Equal(t, []string{tt.wantWarning}, result.Warnings)
		})
	}
}

func TestCheckEligibility_UnparsableInputsSkipChecks(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	loan, facts, flags := qualifyingLoan()
	loan.LoanStartDate = "soon"
	facts.GVWR = "unknown"

	result := engine.CheckEligibility(2025, loan, facts, flags)
	assert.True(t, result.Eligible)
	assert.Empty(t, result.Reasons)
}

func TestCheckEligibility_Deterministic(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.DefaultVehicleLoanRules())
	loan, facts, _ := qualifyingLoan()
	flags := domain.LoanFlags{IsLease: true}

	assert.Equal(t,
		engine.CheckEligibility(2025, loan, facts, flags),
		engine.CheckEligibility(2025, loan, facts, flags))
}

func TestParseGVWRPounds(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"8,500 lbs", "8500", true},
		{"6000", "6000", true},
		{"Class 2E: 6,001 - 7,000 lb (2,722 - 3,175 kg)", "7000", true},
		{"Class 8: 33,001 lb and above (14,969 kg and above)", "33001", true},
		{"14,000.5 lbs", "14000.5", true},
		{"", "0", false},
		{"unknown", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseGVWRPounds(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestNewVehicleLoanEngineDefaults(t *testing.T) {
	engine := NewVehicleLoanEngine(domain.VehicleLoanRules{})
	assert.Equal(t, 2025, engine.Rules.FirstTaxYear)
	assert.Equal(t, 2028, engine.Rules.LastTaxYear)
}

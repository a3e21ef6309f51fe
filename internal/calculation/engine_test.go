package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCase() *domain.CaseFile {
	loan, facts, flags := qualifyingLoan()
	return &domain.CaseFile{
		Name: "visiting researcher",
		Filing: domain.FilingContext{
			TaxYear:       2025,
			FilingStatus:  domain.FilingSingle,
			ModifiedAGI:   "47000",
			DateEnteredUS: "2024-03-01",
		},
		W2s: []domain.IncomeRecord{
			{Employer: "University", Wages: "50000", StateTaxWithheld: "3000", FederalTaxWithheld: "4000", SocialSecurityTax: "3100", MedicareTax: "725"},
		},
		Presence: &domain.PresenceQuery{
			InitialEntryDate: "2024-03-01",
			Intervals:        []domain.ExitEntryInterval{{ExitDate: "2025-06-01", EntryDate: "2025-06-15"}},
		},
		Vehicle: &domain.VehicleCase{Loan: loan, Facts: facts, Flags: flags},
	}
}

func TestRunCase_AllSections(t *testing.T) {
	engine := NewCalculationEngine()

	report, err := engine.RunCase(context.Background(), sampleCase())
	require.NoError(t, err)

	assert.Equal(t, "visiting researcher", report.Name)
	assert.Equal(t, 2025, report.TaxYear)
	assert.Empty(t, report.RunID)

	require.NotNil(t, report.Tax)
	assertDecimal(t, "1401.50", report.Tax.TaxOwed)
	assert.True(t, report.Tax.FICABreakdown.Eligible)
	assertDecimal(t, "-2423.50", report.Tax.NetAmount)

	require.NotNil(t, report.Presence)
	assert.Equal(t, 2025, report.Presence.Year)
	assert.Equal(t, 352, report.Presence.DaysPresent)

	require.NotNil(t, report.Eligibility)
	assert.True(t, report.Eligibility.Eligible)
	require.NotNil(t, report.Interest)
	assertDecimal(t, "1655.71", report.Interest.DeductibleInterest)
}

func TestRunCase_IneligibleVehicleSkipsInterest(t *testing.T) {
	c := sampleCase()
	c.Vehicle.Flags.IsLease = true

	report, err := NewCalculationEngine().RunCase(context.Background(), c)
	require.NoError(t, err)
	require.NotNil(t, report.Eligibility)
	assert.False(t, report.Eligibility.Eligible)
	assert.Nil(t, report.Interest)
}

func TestRunCase_OptionalSections(t *testing.T) {
	c := &domain.CaseFile{Name: "presence only", Filing: domain.FilingContext{TaxYear: 2024}}
	c.Presence = &domain.PresenceQuery{InitialEntryDate: "2023-01-01"}

	report, err := NewCalculationEngine().RunCase(context.Background(), c)
	require.NoError(t, err)
	assert.Nil(t, report.Tax)
	assert.Nil(t, report.Eligibility)
	require.NotNil(t, report.Presence)
	assert.Equal(t, 366, report.Presence.DaysPresent)
}

func TestRunCase_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunCase(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrAggregateInput))

	_, err = engine.RunCase(context.Background(), &domain.CaseFile{Name: "no year"})
	assert.True(t, errors.Is(err, ErrInvalidFilingContext))

	c := sampleCase()
	c.Presence.InitialEntryDate = "unknown"
	_, err = engine.RunCase(context.Background(), c)
	assert.True(t, errors.Is(err, ErrInvalidPresenceQuery))

	c = sampleCase()
	c.Vehicle.Loan.LoanTermMonths = 0
	_, err = engine.RunCase(context.Background(), c)
	assert.True(t, errors.Is(err, ErrInvalidLoanInput))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunCase(ctx, sampleCase())
	assert.True(t, errors.Is(err, context.Canceled))
}

type recordingLogger struct {
	NopLogger
	infos []string
}

func (r *recordingLogger) Infof(format string, args ...interface{}) {
	r.infos = append(r.infos, format)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	assert.Same(t, logger, engine.W2.Logger)
	assert.Same(t, logger, engine.Presence.Logger)
	assert.Same(t, logger, engine.Vehicle.Logger)

	c := sampleCase()
	c.Vehicle.Flags.IsUsedVehicle = true
	_, err := engine.RunCase(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, logger.infos, 1)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}

package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrtax/nra-tax-calculator/internal/calculation"
	"github.com/nrtax/nra-tax-calculator/internal/domain"
)

var vehicleCasePath string

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Vehicle loan interest deduction",
}

var vehicleEligibilityCmd = &cobra.Command{
	Use:   "eligibility",
	Short: "Check whether a vehicle loan qualifies for the interest deduction",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadVehicleCase(cmd)
		if err != nil {
			return err
		}
		v := c.Vehicle
		result := engine.Vehicle.CheckEligibility(c.Filing.TaxYear, v.Loan, v.Facts, v.Flags)
		return writeReport(cmd, &domain.BatchReport{Reports: []domain.CaseReport{{
			RunID:       newRunID(),
			Name:        c.Name,
			TaxYear:     c.Filing.TaxYear,
			Eligibility: &result,
		}}})
	},
}

var vehicleInterestCmd = &cobra.Command{
	Use:   "interest",
	Short: "Calculate the deductible vehicle loan interest for a tax year",
	Long: "Calculates the interest paid in the tax year and the deductible amount after the cap and the MAGI phase-out. " +
		"The calculation runs even when the loan is ineligible; the eligibility result is reported alongside.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadVehicleCase(cmd)
		if err != nil {
			return err
		}
		v := c.Vehicle
		eligibility := engine.Vehicle.CheckEligibility(c.Filing.TaxYear, v.Loan, v.Facts, v.Flags)
		if !eligibility.Eligible {
			zap.L().Warn("loan does not qualify for the deduction", zap.String("case", c.Name), zap.Strings("reasons", eligibility.Reasons))
		}

		interest, err := engine.Vehicle.CalculateInterest(v.Loan, c.Filing)
		if err != nil {
			return eris.Wrapf(err, "case %q", c.Name)
		}
		return writeReport(cmd, &domain.BatchReport{Reports: []domain.CaseReport{{
			RunID:       newRunID(),
			Name:        c.Name,
			TaxYear:     c.Filing.TaxYear,
			Eligibility: &eligibility,
			Interest:    interest,
		}}})
	},
}

func loadVehicleCase(cmd *cobra.Command) (*domain.CaseFile, error) {
	c, err := loadCase(cmd, vehicleCasePath)
	if err != nil {
		return nil, err
	}
	if c.Vehicle == nil {
		return nil, eris.Wrapf(calculation.ErrInvalidLoanInput, "case %q has no vehicle section", c.Name)
	}
	return c, nil
}

func init() {
	vehicleCmd.PersistentFlags().StringVarP(&vehicleCasePath, "case", "c", "", "case file (YAML or JSON)")
	_ = vehicleCmd.MarkPersistentFlagRequired("case")
	vehicleCmd.AddCommand(vehicleEligibilityCmd, vehicleInterestCmd)
	rootCmd.AddCommand(vehicleCmd)
}

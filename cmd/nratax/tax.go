package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nrtax/nra-tax-calculator/internal/calculation"
)

var taxCasePath string

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Calculate federal income tax and FICA refund eligibility from W-2 records",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(cmd, taxCasePath)
		if err != nil {
			return err
		}
		if len(c.W2s) == 0 {
			return eris.Wrapf(calculation.ErrNoIncomeRecords, "case %q", c.Name)
		}
		c.Presence, c.Vehicle = nil, nil
		return runSingle(cmd, c)
	},
}

func init() {
	taxCmd.Flags().StringVarP(&taxCasePath, "case", "c", "", "case file (YAML or JSON)")
	_ = taxCmd.MarkFlagRequired("case")
	rootCmd.AddCommand(taxCmd)
}

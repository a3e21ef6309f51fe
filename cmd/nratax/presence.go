package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nrtax/nra-tax-calculator/internal/calculation"
)

var presenceCasePath string

var presenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "Count the days of physical presence in the United States for a year",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(cmd, presenceCasePath)
		if err != nil {
			return err
		}
		if c.Presence == nil {
			return eris.Wrapf(calculation.ErrInvalidPresenceQuery, "case %q has no presence section", c.Name)
		}
		c.W2s, c.Vehicle = nil, nil
		return runSingle(cmd, c)
	},
}

func init() {
	presenceCmd.Flags().StringVarP(&presenceCasePath, "case", "c", "", "case file (YAML or JSON)")
	_ = presenceCmd.MarkFlagRequired("case")
	rootCmd.AddCommand(presenceCmd)
}

package main

import (
	"github.com/spf13/cobra"
)

var runCasePath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every calculation a case file asks for",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCase(cmd, runCasePath)
		if err != nil {
			return err
		}
		return runSingle(cmd, c)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runCasePath, "case", "c", "", "case file (YAML or JSON)")
	_ = runCmd.MarkFlagRequired("case")
	rootCmd.AddCommand(runCmd)
}

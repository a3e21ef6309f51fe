package main

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrtax/nra-tax-calculator/internal/config"
	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/nrtax/nra-tax-calculator/internal/output"
)

// caseParser returns a parser applying the --year flag. An explicit --year
// replaces the case's tax year; otherwise the current year only fills in a
// missing one.
func caseParser(cmd *cobra.Command) *config.InputParser {
	p := config.NewInputParser()
	p.DefaultTaxYear = taxYear
	p.OverrideTaxYear = cmd.Flags().Changed("year") && taxYear > 0
	if p.DefaultTaxYear <= 0 {
		p.DefaultTaxYear = currentYear()
	}
	return p
}

func loadCase(cmd *cobra.Command, path string) (*domain.CaseFile, error) {
	c, err := caseParser(cmd).LoadCaseFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "load case")
	}
	return c, nil
}

func newRunID() string { return uuid.NewString() }

// runSingle evaluates one case and writes its report
func runSingle(cmd *cobra.Command, c *domain.CaseFile) error {
	report, err := engine.RunCase(cmd.Context(), c)
	if err != nil {
		return err
	}
	report.RunID = newRunID()
	return writeReport(cmd, &domain.BatchReport{Reports: []domain.CaseReport{*report}})
}

// writeReport renders the report in the selected format to --output or stdout
func writeReport(cmd *cobra.Command, report *domain.BatchReport) error {
	name := formatName
	if name == "" {
		name = settings.Output.Format
	}

	if outputFile != "" {
		f, err := output.ResolveFormatter(name)
		if err != nil {
			return err
		}
		path, err := output.SaveFormatted(f, report, outputFile)
		if err != nil {
			return eris.Wrap(err, "write report")
		}
		zap.L().Info("report written", zap.String("path", path), zap.String("format", f.Name()))
		return nil
	}

	b, err := output.GenerateReport(report, name)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(b); err != nil {
		return eris.Wrap(err, "write report")
	}
	return nil
}

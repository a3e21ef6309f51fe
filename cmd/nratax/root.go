package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nrtax/nra-tax-calculator/internal/calculation"
	"github.com/nrtax/nra-tax-calculator/internal/config"
)

var (
	settings *config.Settings
	engine   *calculation.CalculationEngine

	configFile string
	rulesFile  string
	formatName string
	outputFile string
	taxYear    int
)

var rootCmd = &cobra.Command{
	Use:   "nratax",
	Short: "Federal tax calculations for nonresident aliens",
	Long: "Computes federal income tax and FICA refund eligibility from W-2 records, counts days of physical presence, " +
		"and checks eligibility for and calculates the vehicle loan interest deduction.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Load(configFile)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		settings = s

		if err := config.InitLogger(settings.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		e, err := buildEngine()
		if err != nil {
			return err
		}
		engine = e

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "settings file (default ./nratax.yaml)")
	pf.StringVar(&rulesFile, "rules", "", "regulatory rules YAML overriding the built-in 2025 rules")
	pf.StringVarP(&formatName, "format", "f", "", "report format (console, json, csv, detailed-csv, html)")
	pf.StringVarP(&outputFile, "output", "o", "", "write the report to this file instead of stdout")
	pf.IntVar(&taxYear, "year", 0, "tax year (defaults to the case file's year, then the current year)")
}

// buildEngine creates the calculation engine from the rules file named on the
// command line or in the settings, falling back to the built-in rules.
func buildEngine() (*calculation.CalculationEngine, error) {
	path := rulesFile
	if path == "" {
		path = settings.RulesFile
	}

	var e *calculation.CalculationEngine
	if path == "" {
		e = calculation.NewCalculationEngine()
	} else {
		rules, err := config.NewInputParser().LoadRulesFile(path)
		if err != nil {
			return nil, eris.Wrap(err, "load rules")
		}
		e = calculation.NewCalculationEngineWithRules(*rules)
		zap.L().Debug("loaded rules", zap.String("path", path), zap.Int("tax_year", rules.TaxYear))
	}
	e.SetLogger(zap.S())
	return e, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

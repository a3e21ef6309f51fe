package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nrtax/nra-tax-calculator/internal/config"
	"github.com/nrtax/nra-tax-calculator/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective regulatory rules as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			if err := output.SaveRules(&engine.Rules, outputFile); err != nil {
				return eris.Wrap(err, "save rules")
			}
			zap.L().Info("rules written", zap.String("path", outputFile))
			return nil
		}
		b, err := output.RenderRules(&engine.Rules)
		if err != nil {
			return eris.Wrap(err, "render rules")
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a complete example case file",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := yaml.Marshal(config.NewInputParser().CreateExampleCase())
		if err != nil {
			return eris.Wrap(err, "render example case")
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd, exampleCmd)
}

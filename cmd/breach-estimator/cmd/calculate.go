// Package cmd - calculate command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/breach-estimator/internal/estimate"
	"github.com/iwvelando/breach-estimator/pkg/output"
	"github.com/iwvelando/breach-estimator/pkg/validation"
)

var (
	selection    estimate.Selection
	outputFormat string
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Estimate the fines for one breach",
	Long: `Look up the per-record fine bounds for the chosen state regulation and
federal violation, multiply them by the number of breached records and add
the credit monitoring cost.

A selection that matches no reference row is reported as having no defined
bound rather than failing.

Examples:
  breach-estimator calculate --state California --state-regulation CCPA --records 500
  breach-estimator calculate --federal-regulation HIPAA \
    --federal-violation "Willful Neglect (not corrected)" --records 500 --format json`,
	Args: cobra.NoArgs,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVar(&selection.State, "state", "", "state whose law applies")
	calculateCmd.Flags().StringVar(&selection.StateRegulation, "state-regulation", "", "state regulation")
	calculateCmd.Flags().StringVar(&selection.FederalRegulation, "federal-regulation", "", "federal regulation")
	calculateCmd.Flags().StringVar(&selection.FederalViolation, "federal-violation", "", "federal violation type")
	calculateCmd.Flags().StringVarP(&selection.RecordCount, "records", "n", "", "number of breached records")
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format override (pretty, csv, json)")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	format := conf.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}

	calculator, err := newCalculator(store)
	if err != nil {
		return err
	}

	report, err := calculator.Calculate(selection)
	if err != nil {
		return err
	}

	logger.Debug("fines calculated",
		zap.String("op", "cmd.runCalculate"),
		zap.Bool("state_matched", report.State.Matched),
		zap.Bool("federal_matched", report.Federal.Matched),
		zap.Int64("records", report.RecordCount),
	)

	if err := output.Print(format, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

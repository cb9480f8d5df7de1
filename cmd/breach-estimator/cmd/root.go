// Package cmd provides the CLI commands for breach-estimator.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iwvelando/breach-estimator/internal/config"
	"github.com/iwvelando/breach-estimator/internal/estimate"
	"github.com/iwvelando/breach-estimator/internal/reference"
	"github.com/iwvelando/breach-estimator/pkg/constants"
)

// Version is overridden at build time with -ldflags "-X ...cmd.Version=...".
var Version = "dev"

var (
	cfgFile       string
	referencePath string
	logLevel      string
	envFile       string

	conf   *config.Configuration
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "breach-estimator",
	Short: "Estimate regulatory fines for a data breach",
	Long: `breach-estimator estimates the potential state and federal fines for a
data breach, plus the cost of offering credit monitoring to every affected
person.

Fine bounds are read per breached record from a reference workbook with
"State Regulations" and "Federal Regulations" sheets, or an equivalent YAML
file.

Examples:
  breach-estimator states
  breach-estimator regulations California
  breach-estimator calculate --state California --state-regulation CCPA \
    --federal-regulation HIPAA --federal-violation "Reasonable Cause" --records 1000
  breach-estimator serve --address :9000`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initialize,
}

// Execute runs the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		var countErr *estimate.InvalidRecordCountError
		if errors.As(err, &countErr) {
			fmt.Fprintln(os.Stderr, countErr.Message())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	_ = logger.Sync()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", constants.DefaultConfigFile, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&referencePath, "reference", "", "reference data file override (.xlsx, .yaml or .json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before configuration (default .env if present)")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(statesCmd)
	rootCmd.AddCommand(regulationsCmd)
	rootCmd.AddCommand(federalCmd)
	rootCmd.AddCommand(violationsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// initialize loads the environment, configuration and logger shared by every
// command.
func initialize(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	if err := loadEnvFile(); err != nil {
		return err
	}

	var err error
	conf, err = loadConfiguration(cmd)
	if err != nil {
		return err
	}
	if referencePath != "" {
		conf.Reference.Path = referencePath
	}

	logger, err = initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	warnings, err := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cmd.initialize"),
		)
	}
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func loadEnvFile() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// loadConfiguration reads the config file. A missing default config file is
// not an error; a missing file named on the command line is.
func loadConfiguration(cmd *cobra.Command) (*config.Configuration, error) {
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(cfgFile); errors.Is(err, fs.ErrNotExist) {
			return config.LoadDefaults()
		}
	}

	loaded, err := config.LoadConfiguration(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", cfgFile, err)
	}
	return loaded, nil
}

// loadStore reads the reference tables named by the configuration.
func loadStore() (*reference.Store, error) {
	store, err := reference.Load(conf.Reference.Path)
	if err != nil {
		return nil, err
	}

	states, federal := store.Counts()
	logger.Debug("reference data loaded",
		zap.String("op", "cmd.loadStore"),
		zap.String("source", store.Source()),
		zap.Int("state_rows", states),
		zap.Int("federal_rows", federal),
	)

	for _, warning := range store.Validate() {
		logger.Warn("Reference data warning: "+warning,
			zap.String("op", "cmd.loadStore"),
		)
	}
	return store, nil
}

// newCalculator builds a calculator over store using the configured rate
// and currency format.
func newCalculator(store *reference.Store) (*estimate.Calculator, error) {
	formatter, err := conf.Formatter()
	if err != nil {
		return nil, err
	}
	return estimate.NewCalculator(store,
		estimate.WithCreditMonitoringRate(conf.CreditMonitoringRate()),
		estimate.WithFormatter(formatter),
		estimate.WithLogger(logger),
	), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "breach-estimator version %s\n", Version)
	},
}

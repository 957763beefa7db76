package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

const defaultConfigFile = "fraudprep.yaml"

// CLI flags that override config file values
var (
	cfgFile     string
	dataPath    string
	logLevel    string
	logFormat   string
	valFraction float64
	seed        int64
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "fraudprep",
	Short: "Feature preparation for fraud-detection datasets",
	Long: `A CLI tool that prepares a tabular fraud-detection dataset for model
training: it loads a delimited file, separates the fraud label, splits rows into
train and validation sets with label stratification, and fits the column
transform (numeric and boolean pass-through, one-hot categorical) on the train set.

Features:
  - Declarative feature groups (numeric, categorical, boolean, target)
  - Stratified, seed-reproducible train/validation split
  - One-hot encoding with unseen categories mapped to all-zero indicators
  - Class balance and numeric summary reports`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile,
		"Path to configuration file (defaults are used if the default file is absent)")

	// Data override
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "",
		"Override input data file path")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Split overrides
	rootCmd.PersistentFlags().Float64Var(&valFraction, "val-fraction", 0,
		"Override validation fraction, between 0 and 1")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", -1,
		"Override split seed (negative keeps the configured seed)")

	// Output
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored report output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	DataPath           string
	LogLevel           string
	LogFormat          string
	ValidationFraction float64
	Seed               int64
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		DataPath:           dataPath,
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		ValidationFraction: valFraction,
		Seed:               seed,
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/fraudprep/internal/config"
	"github.com/dbsmedya/fraudprep/internal/logger"
	"github.com/dbsmedya/fraudprep/internal/report"
)

// envFiles are loaded before the config so ${VAR} references can use them.
var envFiles = []string{".env"}

// loadConfig reads the config file, applies CLI overrides and validates the
// result. The default config file may be absent; an explicit one may not.
func loadConfig() (*config.Config, error) {
	load := config.Load
	if GetConfigFile() == defaultConfigFile {
		load = config.LoadOptional
	}
	return loadConfigWith(load)
}

// loadConfigStrict is loadConfig for the validate command: the file must
// exist and unknown keys are errors.
func loadConfigStrict() (*config.Config, error) {
	return loadConfigWith(config.LoadStrict)
}

func loadConfigWith(load func(string) (*config.Config, error)) (*config.Config, error) {
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}

	cfg, err := load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat, overrides.DataPath,
		overrides.ValidationFraction, overrides.Seed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads configuration and builds a logger tagged with a fresh run id.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging, newRunID())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}

// newRunID returns a time-ordered UUIDv7, falling back to v4.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// newPrinter styles output only when writing straight to the terminal.
func newPrinter(cmd *cobra.Command) *report.Printer {
	out := cmd.OutOrStdout()
	return report.NewPrinter(out, !noColor && out == os.Stdout)
}

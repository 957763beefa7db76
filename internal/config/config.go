// Package config provides configuration structures and loading for fraudprep.
package config

import (
	"github.com/dbsmedya/fraudprep/internal/features"
	"github.com/dbsmedya/fraudprep/internal/split"
)

// Config represents the complete application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Features FeaturesConfig `yaml:"features" mapstructure:"features"`
	Split    SplitConfig    `yaml:"split" mapstructure:"split"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DataConfig locates the input file.
type DataConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"` // single character, default ","
}

// FeaturesConfig declares the feature groups and the target column.
type FeaturesConfig struct {
	Numeric     []string `yaml:"numeric" mapstructure:"numeric"`
	Categorical []string `yaml:"categorical" mapstructure:"categorical"`
	Boolean     []string `yaml:"boolean" mapstructure:"boolean"`
	Target      string   `yaml:"target" mapstructure:"target"`
}

// SplitConfig represents train/validation split settings.
type SplitConfig struct {
	ValidationFraction float64 `yaml:"validation_fraction" mapstructure:"validation_fraction"`
	Seed               int64   `yaml:"seed" mapstructure:"seed"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	g := features.DefaultGroups()
	return &Config{
		Data: DataConfig{
			Path:      "transactions.csv",
			Delimiter: ",",
		},
		Features: FeaturesConfig{
			Numeric:     g.Numeric,
			Categorical: g.Categorical,
			Boolean:     g.Boolean,
			Target:      g.Target,
		},
		Split: SplitConfig{
			ValidationFraction: split.DefaultValidationFraction,
			Seed:               split.DefaultSeed,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Groups returns the feature declaration as used by the preprocessing packages.
func (c *Config) Groups() features.Groups {
	return features.Groups{
		Numeric:     append([]string(nil), c.Features.Numeric...),
		Categorical: append([]string(nil), c.Features.Categorical...),
		Boolean:     append([]string(nil), c.Features.Boolean...),
		Target:      c.Features.Target,
	}
}

// DelimiterRune returns the configured delimiter, or a comma if unset.
func (d DataConfig) DelimiterRune() rune {
	for _, r := range d.Delimiter {
		return r
	}
	return ','
}

package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateFeatures()...)
	errors = append(errors, c.validateSplit()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateData() ValidationErrors {
	var errors ValidationErrors

	if c.Data.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "data.path",
			Message: "path is required",
		})
	}

	if c.Data.Delimiter != "" {
		r, size := utf8.DecodeRuneInString(c.Data.Delimiter)
		switch {
		case size != len(c.Data.Delimiter):
			errors = append(errors, ValidationError{
				Field:   "data.delimiter",
				Message: "delimiter must be a single character",
			})
		case r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError:
			errors = append(errors, ValidationError{
				Field:   "data.delimiter",
				Message: fmt.Sprintf("delimiter %q is not allowed", r),
			})
		}
	}

	return errors
}

func (c *Config) validateFeatures() ValidationErrors {
	var errors ValidationErrors

	if c.Features.Target == "" {
		errors = append(errors, ValidationError{
			Field:   "features.target",
			Message: "target is required",
		})
	}

	if len(c.Features.Numeric)+len(c.Features.Categorical)+len(c.Features.Boolean) == 0 {
		errors = append(errors, ValidationError{
			Field:   "features",
			Message: "at least one feature column must be declared",
		})
	}

	seen := make(map[string]string)
	groups := []struct {
		name string
		cols []string
	}{
		{"numeric", c.Features.Numeric},
		{"categorical", c.Features.Categorical},
		{"boolean", c.Features.Boolean},
	}
	for _, g := range groups {
		for i, col := range g.cols {
			field := fmt.Sprintf("features.%s[%d]", g.name, i)
			switch {
			case col == "":
				errors = append(errors, ValidationError{
					Field:   field,
					Message: "column name cannot be empty",
				})
			case col == c.Features.Target:
				errors = append(errors, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%q is the target column", col),
				})
			default:
				if prev, ok := seen[col]; ok {
					errors = append(errors, ValidationError{
						Field:   field,
						Message: fmt.Sprintf("%q is already declared in features.%s", col, prev),
					})
					continue
				}
				seen[col] = g.name
			}
		}
	}

	return errors
}

func (c *Config) validateSplit() ValidationErrors {
	var errors ValidationErrors

	if c.Split.ValidationFraction <= 0 || c.Split.ValidationFraction >= 1 {
		errors = append(errors, ValidationError{
			Field:   "split.validation_fraction",
			Message: "validation_fraction must be between 0 and 1 (exclusive)",
		})
	}

	if c.Split.Seed < 0 {
		errors = append(errors, ValidationError{
			Field:   "split.seed",
			Message: "seed cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
data:
  path: /data/transactions.csv
  delimiter: ";"

features:
  numeric: [amount, account_age_days]
  categorical: [transaction_type, merchant_country]
  boolean: [is_international]
  target: is_fraud

split:
  validation_fraction: 0.25
  seed: 7

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "/data/transactions.csv" {
		t.Errorf("expected data path '/data/transactions.csv', got %s", cfg.Data.Path)
	}
	if cfg.Data.DelimiterRune() != ';' {
		t.Errorf("expected delimiter ';', got %q", cfg.Data.Delimiter)
	}

	if len(cfg.Features.Numeric) != 2 {
		t.Errorf("expected 2 numeric features, got %v", cfg.Features.Numeric)
	}
	if len(cfg.Features.Categorical) != 2 || cfg.Features.Categorical[1] != "merchant_country" {
		t.Errorf("expected categorical [transaction_type merchant_country], got %v", cfg.Features.Categorical)
	}

	if cfg.Split.ValidationFraction != 0.25 {
		t.Errorf("expected validation_fraction 0.25, got %f", cfg.Split.ValidationFraction)
	}
	if cfg.Split.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Split.Seed)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadKeepsDefaultsForMissingSections(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	configContent := `
data:
  path: input.csv
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Features.Target != "is_fraud" {
		t.Errorf("expected default target, got %s", cfg.Features.Target)
	}
	if cfg.Split.Seed != 42 {
		t.Errorf("expected default seed 42, got %d", cfg.Split.Seed)
	}
	if cfg.Data.Delimiter != "," {
		t.Errorf("expected default delimiter, got %q", cfg.Data.Delimiter)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("TEST_FRAUD_DATA", "/srv/fraud")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-env.yaml")

	configContent := `
data:
  path: ${TEST_FRAUD_DATA}/transactions.csv
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "/srv/fraud/transactions.csv" {
		t.Errorf("expected data path '/srv/fraud/transactions.csv', got %s", cfg.Data.Path)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Split.ValidationFraction != 0.2 {
		t.Errorf("expected default validation_fraction, got %f", cfg.Split.ValidationFraction)
	}

	// Present but malformed file is still an error
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("data: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadOptional(bad); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestLoadStrict(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.yaml")
	if err := os.WriteFile(good, []byte("data:\n  path: tx.csv\nsplit:\n  seed: 9\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err := LoadStrict(good)
	if err != nil {
		t.Fatalf("LoadStrict() error = %v", err)
	}
	if cfg.Data.Path != "tx.csv" || cfg.Split.Seed != 9 {
		t.Errorf("unexpected config: path=%q seed=%d", cfg.Data.Path, cfg.Split.Seed)
	}
	if cfg.Split.ValidationFraction != 0.2 {
		t.Errorf("expected default validation_fraction, got %f", cfg.Split.ValidationFraction)
	}

	// A misspelled key is silently ignored by Load but rejected here.
	typo := filepath.Join(tmpDir, "typo.yaml")
	if err := os.WriteFile(typo, []byte("split:\n  validation_fractoin: 0.3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(typo); err != nil {
		t.Fatalf("Load() should tolerate unknown keys, got %v", err)
	}
	if _, err := LoadStrict(typo); err == nil {
		t.Error("expected error for unknown key")
	} else if !strings.Contains(err.Error(), "validation_fractoin") {
		t.Errorf("error should name the unknown key, got %v", err)
	}

	if _, err := LoadStrict(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	if err := os.WriteFile(envPath, []byte("FRAUDPREP_TEST_DIR=/from/dotenv\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("FRAUDPREP_TEST_DIR") })

	if err := LoadEnvFiles(filepath.Join(tmpDir, "missing.env"), envPath); err != nil {
		t.Fatalf("LoadEnvFiles failed: %v", err)
	}
	if got := os.Getenv("FRAUDPREP_TEST_DIR"); got != "/from/dotenv" {
		t.Errorf("expected FRAUDPREP_TEST_DIR from .env, got %q", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.ApplyOverrides("debug", "json", "other.csv", 0.3, 99)

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug' after override, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json' after override, got %s", cfg.Logging.Format)
	}
	if cfg.Data.Path != "other.csv" {
		t.Errorf("expected data path 'other.csv' after override, got %s", cfg.Data.Path)
	}
	if cfg.Split.ValidationFraction != 0.3 {
		t.Errorf("expected validation_fraction 0.3 after override, got %f", cfg.Split.ValidationFraction)
	}
	if cfg.Split.Seed != 99 {
		t.Errorf("expected seed 99 after override, got %d", cfg.Split.Seed)
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	cfg := &Config{
		Data:    DataConfig{Path: "keep.csv"},
		Split:   SplitConfig{ValidationFraction: 0.1, Seed: 5},
		Logging: LoggingConfig{Level: "warn", Format: "json"},
	}

	// Zero values and a negative seed should NOT override
	cfg.ApplyOverrides("", "", "", 0, -1)

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' to be preserved, got %s", cfg.Logging.Level)
	}
	if cfg.Data.Path != "keep.csv" {
		t.Errorf("expected data path to be preserved, got %s", cfg.Data.Path)
	}
	if cfg.Split.ValidationFraction != 0.1 {
		t.Errorf("expected validation_fraction 0.1 to be preserved, got %f", cfg.Split.ValidationFraction)
	}
	if cfg.Split.Seed != 5 {
		t.Errorf("expected seed 5 to be preserved, got %d", cfg.Split.Seed)
	}
}

func TestApplyOverridesSeedZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides("", "", "", 0, 0)
	if cfg.Split.Seed != 0 {
		t.Errorf("expected explicit seed 0 to override, got %d", cfg.Split.Seed)
	}
}

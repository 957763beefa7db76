package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fraudprep/internal/table"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check the dataset header",
	Long: `Validate checks the configuration file and, when the data file is
readable, that it carries every declared column.

Checks performed:
  - Configuration file exists and parses
  - No unknown configuration keys
  - Required fields
  - Feature groups are disjoint and exclude the target
  - Validation fraction and seed ranges
  - Data file is readable and well-formed
  - Required columns are present

Example:
  fraudprep validate --config fraudprep.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cmd.Printf("\n=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())

	cfg, err := loadConfigStrict()
	if err != nil {
		cmd.Printf("❌ %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	groups := cfg.Groups()
	cmd.Printf("Data file: %s\n", cfg.Data.Path)
	cmd.Printf("Features: %d numeric, %d categorical, %d boolean; target %q\n\n",
		len(groups.Numeric), len(groups.Categorical), len(groups.Boolean), groups.Target)
	cmd.Printf("✅ Configuration is valid\n")

	tbl, err := table.Load(cfg.Data.Path, table.WithDelimiter(cfg.Data.DelimiterRune()))
	if err != nil {
		cmd.Printf("❌ Data file check failed: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := groups.CheckTable(tbl); err != nil {
		cmd.Printf("❌ Schema check failed: %v\n", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	cmd.Printf("✅ Data file has all %d required columns (%d rows)\n", len(groups.Required()), tbl.Rows())

	cmd.Println("\n=== Validation Complete ===")
	return nil
}

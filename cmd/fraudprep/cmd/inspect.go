package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fraudprep/internal/features"
	"github.com/dbsmedya/fraudprep/internal/table"
)

// sampleRows is how many leading rows inspect prints.
const sampleRows = 5

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the dataset schema and label distribution",
	Long: `Inspect loads the dataset and reports what the feature declaration
will see, without splitting or transforming anything.

The report shows:
  - Every column with its feature group and distinct value count
  - The first rows of the file
  - Required columns missing from the file
  - Target class distribution

Example:
  fraudprep inspect --data transactions.csv`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	stageLog := log.WithStage("inspect").WithDataset(cfg.Data.Path)
	tbl, err := table.Load(cfg.Data.Path, table.WithDelimiter(cfg.Data.DelimiterRune()))
	if err != nil {
		stageLog.Errorw("Failed to load dataset", "error", err)
		return err
	}
	stageLog.Infow("Dataset loaded", "rows", tbl.Rows(), "columns", tbl.Width())

	groups := cfg.Groups()
	p := newPrinter(cmd)

	p.Header("Dataset: %s", cfg.Data.Path)
	p.Blank()
	p.Section("Overview")
	p.KeyValues([][2]string{
		{"Rows", strconv.Itoa(tbl.Rows())},
		{"Columns", strconv.Itoa(tbl.Width())},
		{"Target", groups.Target},
	})
	p.Blank()

	p.Section("Columns")
	roles := columnRoles(groups)
	var rows [][]string
	for _, name := range tbl.Columns() {
		cells, _ := tbl.Column(name)
		role, ok := roles[name]
		if !ok {
			role = "(ignored)"
		}
		rows = append(rows, []string{name, role, strconv.Itoa(distinct(cells))})
	}
	p.Table([]string{"column", "role", "distinct"}, rows)
	p.Blank()

	if n := min(tbl.Rows(), sampleRows); n > 0 {
		p.Section("Sample Rows")
		sample := make([][]string, 0, n)
		for i := 0; i < n; i++ {
			row, err := tbl.Row(i)
			if err != nil {
				return err
			}
			sample = append(sample, row)
		}
		p.Table(tbl.Columns(), sample)
		p.Blank()
	}

	schemaErr := groups.CheckTable(tbl)
	if schemaErr != nil {
		p.Section("Missing Columns")
		for _, name := range tbl.Missing(groups.Required()...) {
			p.Line("  - %s (%s)", name, roles[name])
		}
		p.Blank()
	}

	if tbl.Has(groups.Target) {
		labels, _ := tbl.Column(groups.Target)
		p.Section("Target Distribution")
		p.Table([]string{"label", "rows", "share %"}, labelDistribution(labels))
	}

	if schemaErr != nil {
		return fmt.Errorf("dataset does not match feature declaration: %w", schemaErr)
	}
	return nil
}

// columnRoles maps each declared column to its group name.
func columnRoles(g features.Groups) map[string]string {
	roles := make(map[string]string)
	for _, c := range g.Numeric {
		roles[c] = "numeric"
	}
	for _, c := range g.Categorical {
		roles[c] = "categorical"
	}
	for _, c := range g.Boolean {
		roles[c] = "boolean"
	}
	roles[g.Target] = "target"
	return roles
}

func distinct(cells []string) int {
	seen := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		seen[c] = struct{}{}
	}
	return len(seen)
}

func labelDistribution(labels []string) [][]string {
	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		share := 0.0
		if len(labels) > 0 {
			share = float64(counts[k]) / float64(len(labels))
		}
		rows = append(rows, []string{k, strconv.Itoa(counts[k]), percent(share)})
	}
	return rows
}


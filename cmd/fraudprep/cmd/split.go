package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/fraudprep/internal/config"
	"github.com/dbsmedya/fraudprep/internal/report"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the dataset and fit the feature transform",
	Long: `Split loads the dataset, separates the target column, partitions rows
into stratified train and validation subsets, fits the preprocessor on the
train subset and applies it to both.

The report shows:
  - Subset shapes before and after transformation
  - Class balance per subset
  - Output feature names in matrix order
  - Summary statistics of the transformed train features

Example:
  fraudprep split --data transactions.csv --val-fraction 0.2 --seed 42`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	prep, err := prepare(cfg, log)
	if err != nil {
		log.Errorw("Preparation failed", "error", err)
		return err
	}

	return printSplitReport(newPrinter(cmd), cfg, prep)
}

func printSplitReport(p *report.Printer, cfg *config.Config, prep *preparation) error {
	res := prep.Split
	trainRows, trainCols := prep.TrainMatrix.Dims()
	valRows, valCols := prep.ValMatrix.Dims()

	p.Header("Train/Validation Split: %s", cfg.Data.Path)
	p.Blank()

	p.Section("Dataset")
	p.KeyValues([][2]string{
		{"Rows", strconv.Itoa(prep.Source.Rows())},
		{"Columns", strconv.Itoa(prep.Source.Width())},
		{"Target", cfg.Features.Target},
		{"Validation Fraction", strconv.FormatFloat(cfg.Split.ValidationFraction, 'f', -1, 64)},
		{"Seed", strconv.FormatInt(cfg.Split.Seed, 10)},
		{"Elapsed", prep.Duration.String()},
	})
	p.Blank()

	p.Section("Shapes")
	p.Table([]string{"subset", "rows", "feature columns", "matrix columns"}, [][]string{
		{"train", strconv.Itoa(trainRows), strconv.Itoa(res.TrainFeatures.Width()), strconv.Itoa(trainCols)},
		{"validation", strconv.Itoa(valRows), strconv.Itoa(res.ValFeatures.Width()), strconv.Itoa(valCols)},
	})
	p.Blank()

	p.Section("Class Balance")
	var rows [][]string
	for _, b := range report.Balance(res.ClassCounts()) {
		rows = append(rows, []string{
			b.Label,
			strconv.Itoa(b.Train),
			strconv.Itoa(b.Val),
			percent(b.TrainShare),
			percent(b.ValShare),
			percent(b.TotalShare),
		})
	}
	p.Table([]string{"label", "train", "val", "train %", "val %", "overall %"}, rows)
	p.Blank()

	p.Section("Output Features")
	left, right := featureColumns(prep.FeatureNames)
	p.SideBySide(left, right, 4)
	p.Blank()

	sums, err := report.Summarize(prep.TrainMatrix, prep.FeatureNames)
	if err != nil {
		return fmt.Errorf("failed to summarize train features: %w", err)
	}
	p.Section("Train Feature Summary")
	rows = rows[:0]
	for _, s := range sums {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Count),
			strconv.Itoa(s.Missing),
			num(s.Mean),
			num(s.StdDev),
			num(s.Min),
			num(s.Max),
		})
	}
	p.Table([]string{"feature", "count", "missing", "mean", "std", "min", "max"}, rows)

	return nil
}

// featureColumns lays out indexed feature names in two columns, the first
// holding the extra name when the count is odd.
func featureColumns(names []string) (string, []string) {
	half := (len(names) + 1) / 2
	var left strings.Builder
	for i := 0; i < half; i++ {
		fmt.Fprintf(&left, "  [%d] %s\n", i, names[i])
	}
	right := make([]string, 0, len(names)-half)
	for i := half; i < len(names); i++ {
		right = append(right, fmt.Sprintf("[%d] %s", i, names[i]))
	}
	return left.String(), right
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

package cmd

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/dbsmedya/fraudprep/internal/config"
	"github.com/dbsmedya/fraudprep/internal/features"
	"github.com/dbsmedya/fraudprep/internal/logger"
	"github.com/dbsmedya/fraudprep/internal/preprocess"
	"github.com/dbsmedya/fraudprep/internal/split"
	"github.com/dbsmedya/fraudprep/internal/table"
)

// preparation is everything one run produces, kept in memory only.
type preparation struct {
	Source       *table.Table
	Split        *split.Result
	Preprocessor *preprocess.Preprocessor
	TrainMatrix  *mat.Dense
	ValMatrix    *mat.Dense
	FeatureNames []string
	Duration     time.Duration
}

// prepare loads the dataset and runs split features/labels, the stratified
// split, and the preprocessor fitted on train then applied to both subsets.
func prepare(cfg *config.Config, log *logger.Logger) (*preparation, error) {
	start := time.Now()
	groups := cfg.Groups()
	if err := groups.Validate(); err != nil {
		return nil, err
	}

	loadLog := log.WithStage("load").WithDataset(cfg.Data.Path)
	loadLog.Debugw("Loading dataset", "delimiter", string(cfg.Data.DelimiterRune()))
	src, err := table.Load(cfg.Data.Path, table.WithDelimiter(cfg.Data.DelimiterRune()))
	if err != nil {
		return nil, err
	}
	loadLog.Infow("Dataset loaded", "rows", src.Rows(), "columns", src.Width())

	if err := groups.CheckTable(src); err != nil {
		return nil, err
	}

	feats, labels, err := features.SplitFeaturesLabels(src, groups.Target)
	if err != nil {
		return nil, err
	}
	// Only the declared feature columns go forward.
	feats, err = feats.Select(groups.FeatureColumns()...)
	if err != nil {
		return nil, err
	}

	splitLog := log.WithStage("split")
	res, err := split.TrainValSplit(feats, labels,
		split.WithValidationFraction(cfg.Split.ValidationFraction),
		split.WithSeed(cfg.Split.Seed),
	)
	if err != nil {
		return nil, fmt.Errorf("train/validation split failed: %w", err)
	}
	splitLog.Infow("Stratified split complete",
		"train_rows", res.TrainFeatures.Rows(),
		"val_rows", res.ValFeatures.Rows(),
		"validation_fraction", cfg.Split.ValidationFraction,
		"seed", cfg.Split.Seed,
	)

	fitLog := log.WithStage("fit")
	pre := preprocess.Build(groups)
	trainX, err := pre.FitTransform(res.TrainFeatures)
	if err != nil {
		return nil, fmt.Errorf("failed to fit preprocessor on train features: %w", err)
	}
	for _, tr := range pre.Transformers() {
		if tr.Kind != preprocess.KindOneHot {
			fitLog.Debugw("Transformer fitted", "transformer", tr.Name, "kind", tr.Kind, "columns", tr.Columns)
			continue
		}
		for _, col := range tr.Columns {
			vocab, _ := pre.Categories(col)
			fitLog.Debugw("Learned categories", "transformer", tr.Name, "column", col, "categories", vocab)
		}
	}

	valX, err := pre.Transform(res.ValFeatures)
	if err != nil {
		return nil, fmt.Errorf("failed to transform validation features: %w", err)
	}
	names, err := pre.FeatureNames()
	if err != nil {
		return nil, err
	}

	_, width := trainX.Dims()
	log.WithStage("transform").Infow("Features transformed", "output_columns", width)

	return &preparation{
		Source:       src,
		Split:        res,
		Preprocessor: pre,
		TrainMatrix:  trainX,
		ValMatrix:    valX,
		FeatureNames: names,
		Duration:     time.Since(start),
	}, nil
}

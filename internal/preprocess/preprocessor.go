// Package preprocess implements the column-wise feature transform: numeric and
// boolean columns pass through, categorical columns are one-hot encoded.
//
// A Preprocessor is built unfitted. Fit learns each categorical column's
// vocabulary; Transform then produces a dense matrix whose columns follow the
// declared transformer order.
package preprocess

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/dbsmedya/fraudprep/internal/features"
	"github.com/dbsmedya/fraudprep/internal/table"
	"github.com/dbsmedya/fraudprep/internal/types"
)

// Kind selects how a transformer maps its columns.
type Kind string

const (
	// KindPassthrough copies numeric cells unchanged.
	KindPassthrough Kind = "passthrough"
	// KindBoolean copies boolean cells as 1/0.
	KindBoolean Kind = "boolean"
	// KindOneHot expands each column into one indicator per category.
	KindOneHot Kind = "onehot"
)

// Transformer is one named block of the output matrix.
type Transformer struct {
	Name    string
	Kind    Kind
	Columns []string
}

// Preprocessor is a reusable column transform specification.
type Preprocessor struct {
	transformers []Transformer
	categories   map[string][]string
	index        map[string]map[string]int
	fitted       bool
}

// Build returns the unfitted transform for the given feature groups:
// "num" pass-through, "cat" one-hot, then "bool" pass-through.
func Build(g features.Groups) *Preprocessor {
	return New(
		Transformer{Name: "num", Kind: KindPassthrough, Columns: append([]string(nil), g.Numeric...)},
		Transformer{Name: "cat", Kind: KindOneHot, Columns: append([]string(nil), g.Categorical...)},
		Transformer{Name: "bool", Kind: KindBoolean, Columns: append([]string(nil), g.Boolean...)},
	)
}

// New returns an unfitted Preprocessor applying the transformers in order.
func New(transformers ...Transformer) *Preprocessor {
	return &Preprocessor{transformers: transformers}
}

// Transformers returns the declared transformer blocks.
func (p *Preprocessor) Transformers() []Transformer {
	out := make([]Transformer, len(p.transformers))
	copy(out, p.transformers)
	return out
}

// InputColumns returns every column the transform reads, in output order.
func (p *Preprocessor) InputColumns() []string {
	var cols []string
	for _, tr := range p.transformers {
		cols = append(cols, tr.Columns...)
	}
	return cols
}

// Fit learns the sorted distinct values of every one-hot column.
// Refitting replaces any previously learned vocabulary.
func (p *Preprocessor) Fit(t *table.Table) error {
	if err := p.checkColumns(t); err != nil {
		return err
	}

	categories := make(map[string][]string)
	index := make(map[string]map[string]int)
	for _, tr := range p.transformers {
		if tr.Kind != KindOneHot {
			continue
		}
		for _, col := range tr.Columns {
			cells, err := t.Column(col)
			if err != nil {
				return err
			}
			vocab := distinctSorted(cells)
			categories[col] = vocab
			lookup := make(map[string]int, len(vocab))
			for i, v := range vocab {
				lookup[v] = i
			}
			index[col] = lookup
		}
	}

	p.categories = categories
	p.index = index
	p.fitted = true
	return nil
}

// Transform applies the fitted transform. Unknown categories produce an
// all-zero indicator block for that row.
func (p *Preprocessor) Transform(t *table.Table) (*mat.Dense, error) {
	if !p.fitted {
		return nil, types.ErrNotFitted
	}
	if err := p.checkColumns(t); err != nil {
		return nil, err
	}

	rows, width := t.Rows(), p.outputWidth()
	if rows == 0 || width == 0 {
		// gonum refuses zero-sized matrices.
		return nil, fmt.Errorf("%w: cannot transform a %dx%d table", types.ErrInvalidArgument, rows, width)
	}

	out := mat.NewDense(rows, width, nil)
	offset := 0
	for _, tr := range p.transformers {
		for _, col := range tr.Columns {
			cells, err := t.Column(col)
			if err != nil {
				return nil, err
			}

			switch tr.Kind {
			case KindOneHot:
				lookup := p.index[col]
				for i, cell := range cells {
					if j, ok := lookup[cell]; ok {
						out.Set(i, offset+j, 1)
					}
				}
				offset += len(p.categories[col])
			case KindBoolean:
				if err := fillColumn(out, offset, col, cells, types.BoolToFloat64); err != nil {
					return nil, err
				}
				offset++
			default:
				if err := fillColumn(out, offset, col, cells, types.ToFloat64); err != nil {
					return nil, err
				}
				offset++
			}
		}
	}

	return out, nil
}

// FitTransform fits on t and returns its transform.
func (p *Preprocessor) FitTransform(t *table.Table) (*mat.Dense, error) {
	if err := p.Fit(t); err != nil {
		return nil, err
	}
	return p.Transform(t)
}

// Categories returns the learned vocabulary of a one-hot column.
func (p *Preprocessor) Categories(column string) ([]string, error) {
	if !p.fitted {
		return nil, types.ErrNotFitted
	}
	vocab, ok := p.categories[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a one-hot column", types.ErrInvalidArgument, column)
	}
	return append([]string(nil), vocab...), nil
}

// FeatureNames returns one name per output column:
// "<transformer>__<column>" for pass-through blocks and
// "<transformer>__<column>_<category>" for indicators.
func (p *Preprocessor) FeatureNames() ([]string, error) {
	if !p.fitted {
		return nil, types.ErrNotFitted
	}
	names := make([]string, 0, p.outputWidth())
	for _, tr := range p.transformers {
		for _, col := range tr.Columns {
			if tr.Kind == KindOneHot {
				for _, cat := range p.categories[col] {
					names = append(names, fmt.Sprintf("%s__%s_%s", tr.Name, col, cat))
				}
				continue
			}
			names = append(names, fmt.Sprintf("%s__%s", tr.Name, col))
		}
	}
	return names, nil
}

func (p *Preprocessor) outputWidth() int {
	width := 0
	for _, tr := range p.transformers {
		for _, col := range tr.Columns {
			if tr.Kind == KindOneHot {
				width += len(p.categories[col])
			} else {
				width++
			}
		}
	}
	return width
}

func (p *Preprocessor) checkColumns(t *table.Table) error {
	if missing := t.Missing(p.InputColumns()...); len(missing) > 0 {
		return fmt.Errorf("%w: preprocessor input missing column(s) %v", types.ErrSchema, missing)
	}
	return nil
}

func fillColumn(out *mat.Dense, j int, col string, cells []string, conv func(string) (float64, error)) error {
	for i, cell := range cells {
		v, err := conv(cell)
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", col, i, err)
		}
		out.Set(i, j, v)
	}
	return nil
}

func distinctSorted(cells []string) []string {
	seen := make(map[string]struct{}, len(cells))
	vocab := make([]string, 0)
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		vocab = append(vocab, c)
	}
	sort.Strings(vocab)
	return vocab
}

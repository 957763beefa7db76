package report

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/dbsmedya/fraudprep/internal/split"
)

// ColumnSummary describes one numeric output column.
type ColumnSummary struct {
	Name    string
	Count   int // non-missing values
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize computes a ColumnSummary for each named column of m.
// NaN cells count as missing. A column with no values reports NaN statistics.
func Summarize(m *mat.Dense, names []string) ([]ColumnSummary, error) {
	_, cols := m.Dims()
	if len(names) != cols {
		return nil, fmt.Errorf("%d names for %d columns", len(names), cols)
	}

	out := make([]ColumnSummary, cols)
	for j := 0; j < cols; j++ {
		s, err := summarizeColumn(names[j], mat.Col(nil, j, m))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", names[j], err)
		}
		out[j] = s
	}
	return out, nil
}

func summarizeColumn(name string, values []float64) (ColumnSummary, error) {
	s := ColumnSummary{Name: name}

	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			s.Missing++
			continue
		}
		data = append(data, v)
	}
	s.Count = len(data)

	if s.Count == 0 {
		s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s, nil
	}

	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	return s, nil
}

// ClassBalance is a ClassCount with each subset's share of the label.
type ClassBalance struct {
	split.ClassCount
	TrainShare float64
	ValShare   float64
	TotalShare float64
}

// Balance converts split class counts into per-subset proportions.
func Balance(counts []split.ClassCount) []ClassBalance {
	var train, val float64
	for _, c := range counts {
		train += float64(c.Train)
		val += float64(c.Val)
	}

	out := make([]ClassBalance, len(counts))
	for i, c := range counts {
		b := ClassBalance{ClassCount: c}
		if train > 0 {
			b.TrainShare = float64(c.Train) / train
		}
		if val > 0 {
			b.ValShare = float64(c.Val) / val
		}
		if train+val > 0 {
			b.TotalShare = float64(c.Train+c.Val) / (train + val)
		}
		out[i] = b
	}
	return out
}

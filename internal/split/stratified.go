// Package split partitions feature rows into train and validation subsets
// while preserving the label distribution in both.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/dbsmedya/fraudprep/internal/table"
	"github.com/dbsmedya/fraudprep/internal/types"
)

const (
	// DefaultValidationFraction is the share of rows held out for validation.
	DefaultValidationFraction = 0.2
	// DefaultSeed seeds the row shuffle.
	DefaultSeed int64 = 42
	// minClassMembers is the smallest stratum that can be represented in
	// both subsets.
	minClassMembers = 2
)

// Options controls a split.
type Options struct {
	ValidationFraction float64
	Seed               int64
}

// Option customizes Options.
type Option func(*Options)

// WithValidationFraction sets the share of rows assigned to validation.
func WithValidationFraction(f float64) Option {
	return func(o *Options) { o.ValidationFraction = f }
}

// WithSeed sets the shuffle seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// Result holds the four aligned subsets of a split.
type Result struct {
	TrainFeatures *table.Table
	ValFeatures   *table.Table
	TrainLabels   []string
	ValLabels     []string
	// Source row positions of each subset, aligned with the rows above.
	TrainIndices []int
	ValIndices   []int
}

// ClassCount is the number of rows carrying one label value in each subset.
type ClassCount struct {
	Label string
	Train int
	Val   int
}

// ClassCounts returns per-label counts for both subsets, ordered by label.
func (r *Result) ClassCounts() []ClassCount {
	counts := make(map[string]*ClassCount)
	get := func(label string) *ClassCount {
		c, ok := counts[label]
		if !ok {
			c = &ClassCount{Label: label}
			counts[label] = c
		}
		return c
	}
	for _, l := range r.TrainLabels {
		get(l).Train++
	}
	for _, l := range r.ValLabels {
		get(l).Val++
	}

	out := make([]ClassCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// TrainValSplit performs a stratified shuffle split of features and labels.
//
// The validation subset has ceil(fraction*n) rows. Each class contributes to
// it in proportion to its size, rounded so the total is exact. The same
// inputs and seed always produce the same partition.
func TrainValSplit(feats *table.Table, labels []string, opts ...Option) (*Result, error) {
	options := Options{
		ValidationFraction: DefaultValidationFraction,
		Seed:               DefaultSeed,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if feats.Rows() != len(labels) {
		return nil, fmt.Errorf("%w: %d feature rows but %d labels",
			types.ErrShapeMismatch, feats.Rows(), len(labels))
	}

	trainIdx, valIdx, err := StratifiedIndices(labels, options.ValidationFraction, options.Seed)
	if err != nil {
		return nil, err
	}

	trainFeats, err := feats.Take(trainIdx)
	if err != nil {
		return nil, err
	}
	valFeats, err := feats.Take(valIdx)
	if err != nil {
		return nil, err
	}

	return &Result{
		TrainFeatures: trainFeats,
		ValFeatures:   valFeats,
		TrainLabels:   pick(labels, trainIdx),
		ValLabels:     pick(labels, valIdx),
		TrainIndices:  trainIdx,
		ValIndices:    valIdx,
	}, nil
}

// StratifiedIndices returns train and validation row positions for labels.
func StratifiedIndices(labels []string, fraction float64, seed int64) (train, val []int, err error) {
	if math.IsNaN(fraction) || fraction <= 0 || fraction >= 1 {
		return nil, nil, fmt.Errorf("%w: validation fraction %v must be in (0, 1)",
			types.ErrInvalidArgument, fraction)
	}

	n := len(labels)
	if n == 0 {
		return nil, nil, fmt.Errorf("%w: cannot split zero rows", types.ErrInvalidArgument)
	}
	classes, members := groupByClass(labels)

	for _, c := range classes {
		if len(members[c]) < minClassMembers {
			return nil, nil, fmt.Errorf("%w: class %q has %d member(s), at least %d required for a stratified split",
				types.ErrCardinality, c, len(members[c]), minClassMembers)
		}
	}

	nVal := int(math.Ceil(fraction * float64(n)))
	nTrain := n - nVal
	if nVal < len(classes) {
		return nil, nil, fmt.Errorf("%w: validation size %d is smaller than the number of classes %d",
			types.ErrCardinality, nVal, len(classes))
	}
	if nTrain < len(classes) {
		return nil, nil, fmt.Errorf("%w: train size %d is smaller than the number of classes %d",
			types.ErrCardinality, nTrain, len(classes))
	}

	sizes := make([]int, len(classes))
	for i, c := range classes {
		sizes[i] = len(members[c])
	}
	valCounts := allocate(sizes, nVal)

	rng := rand.New(rand.NewSource(seed))
	train = make([]int, 0, nTrain)
	val = make([]int, 0, nVal)
	for i, c := range classes {
		idx := members[c]
		perm := rng.Perm(len(idx))
		for k, p := range perm {
			if k < valCounts[i] {
				val = append(val, idx[p])
			} else {
				train = append(train, idx[p])
			}
		}
	}

	// Interleave classes so neither subset is grouped by label.
	rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })
	rng.Shuffle(len(val), func(i, j int) { val[i], val[j] = val[j], val[i] })

	return train, val, nil
}

// groupByClass returns the distinct labels in sorted order and the row
// positions carrying each.
func groupByClass(labels []string) ([]string, map[string][]int) {
	members := make(map[string][]int)
	for i, l := range labels {
		members[l] = append(members[l], i)
	}
	classes := make([]string, 0, len(members))
	for c := range members {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes, members
}

// allocate splits draws across classes proportionally to sizes.
// Each class gets floor(size*draws/total); the leftover goes one each to the
// classes with the largest remainders, larger classes first on ties. No class
// is given more than its size.
func allocate(sizes []int, draws int) []int {
	total := 0
	for _, s := range sizes {
		total += s
	}

	counts := make([]int, len(sizes))
	remainders := make([]float64, len(sizes))
	assigned := 0
	for i, s := range sizes {
		exact := float64(s) * float64(draws) / float64(total)
		counts[i] = int(math.Floor(exact))
		remainders[i] = exact - float64(counts[i])
		assigned += counts[i]
	}

	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if remainders[ia] != remainders[ib] {
			return remainders[ia] > remainders[ib]
		}
		return sizes[ia] > sizes[ib]
	})

	for left := draws - assigned; left > 0; {
		progressed := false
		for _, i := range order {
			if left == 0 {
				break
			}
			if counts[i] < sizes[i] {
				counts[i]++
				left--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return counts
}

func pick(labels []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}

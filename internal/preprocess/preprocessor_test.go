package preprocess

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/dbsmedya/fraudprep/internal/features"
	"github.com/dbsmedya/fraudprep/internal/table"
	"github.com/dbsmedya/fraudprep/internal/types"
)

func featureTable(t *testing.T, txTypes []string, intl []string) *table.Table {
	t.Helper()
	n := len(txTypes)
	col := func(vals ...string) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = vals[i%len(vals)]
		}
		return out
	}
	tbl, err := table.New(
		[]string{"amount", "account_age_days", "num_transactions_last_24h",
			"avg_transaction_amount_7d", "transaction_type", "is_international"},
		[][]string{
			col("120.5", "9.99", "45"),
			col("365", "12", "1024"),
			col("3", "14", "1"),
			col("80.1", "15", "50.25"),
			txTypes,
			intl,
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestBuild_Layout(t *testing.T) {
	p := Build(features.DefaultGroups())

	trs := p.Transformers()
	require.Len(t, trs, 3)
	assert.Equal(t, "num", trs[0].Name)
	assert.Equal(t, KindPassthrough, trs[0].Kind)
	assert.Equal(t, "cat", trs[1].Name)
	assert.Equal(t, KindOneHot, trs[1].Kind)
	assert.Equal(t, []string{"transaction_type"}, trs[1].Columns)
	assert.Equal(t, "bool", trs[2].Name)

	_, err := p.FeatureNames()
	assert.True(t, errors.Is(err, types.ErrNotFitted))
}

func TestFitTransform(t *testing.T) {
	tbl := featureTable(t, []string{"pos", "online", "atm"}, []string{"False", "True", "False"})
	p := Build(features.DefaultGroups())

	out, err := p.FitTransform(tbl)
	require.NoError(t, err)

	r, c := out.Dims()
	assert.Equal(t, 3, r)
	// 4 numeric + 3 categories + 1 boolean
	assert.Equal(t, 8, c)

	// Categories are sorted: atm, online, pos.
	assert.Equal(t, []float64{120.5, 365, 3, 80.1, 0, 0, 1, 0}, out.RawRowView(0))
	assert.Equal(t, []float64{9.99, 12, 14, 15, 0, 1, 0, 1}, out.RawRowView(1))
	assert.Equal(t, []float64{45, 1024, 1, 50.25, 1, 0, 0, 0}, out.RawRowView(2))

	names, err := p.FeatureNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"num__amount",
		"num__account_age_days",
		"num__num_transactions_last_24h",
		"num__avg_transaction_amount_7d",
		"cat__transaction_type_atm",
		"cat__transaction_type_online",
		"cat__transaction_type_pos",
		"bool__is_international",
	}, names)

	vocab, err := p.Categories("transaction_type")
	require.NoError(t, err)
	assert.Equal(t, []string{"atm", "online", "pos"}, vocab)
}

func TestTransform_UnseenCategoryIsZeroRow(t *testing.T) {
	train := featureTable(t, []string{"online", "pos", "online"}, []string{"False", "True", "False"})
	p := Build(features.DefaultGroups())
	require.NoError(t, p.Fit(train))

	apply := featureTable(t, []string{"crypto", "pos", "online"}, []string{"True", "False", "True"})
	out, err := p.Transform(apply)
	require.NoError(t, err)

	_, c := out.Dims()
	assert.Equal(t, 7, c)

	row := out.RawRowView(0)
	// indicator block sits after the four numeric columns
	assert.Equal(t, []float64{0, 0}, row[4:6])
	assert.Equal(t, float64(1), row[6])

	assert.Equal(t, []float64{0, 1}, out.RawRowView(1)[4:6])
	assert.Equal(t, []float64{1, 0}, out.RawRowView(2)[4:6])
}

func TestTransform_Deterministic(t *testing.T) {
	tbl := featureTable(t, []string{"pos", "online", "atm", "online"}, []string{"False", "True", "False", "True"})
	p := Build(features.DefaultGroups())
	require.NoError(t, p.Fit(tbl))

	first, err := p.Transform(tbl)
	require.NoError(t, err)
	second, err := p.Transform(tbl)
	require.NoError(t, err)

	assert.True(t, mat.Equal(first, second))
}

func TestTransform_NotFitted(t *testing.T) {
	tbl := featureTable(t, []string{"pos"}, []string{"False"})
	p := Build(features.DefaultGroups())

	_, err := p.Transform(tbl)
	assert.True(t, errors.Is(err, types.ErrNotFitted))

	_, err = p.FeatureNames()
	assert.True(t, errors.Is(err, types.ErrNotFitted))

	_, err = p.Categories("transaction_type")
	assert.True(t, errors.Is(err, types.ErrNotFitted))
}

func TestFit_MissingColumn(t *testing.T) {
	tbl, err := table.New([]string{"amount"}, [][]string{{"1"}})
	require.NoError(t, err)

	p := Build(features.DefaultGroups())
	err = p.Fit(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSchema))
	assert.Contains(t, err.Error(), "transaction_type")
}

func TestTransform_ParseError(t *testing.T) {
	tbl := featureTable(t, []string{"pos", "atm"}, []string{"False", "perhaps"})
	p := Build(features.DefaultGroups())

	_, err := p.FitTransform(tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParse))
	assert.Contains(t, err.Error(), "is_international")
	assert.Contains(t, err.Error(), "row 1")
}

func TestTransform_MissingNumericIsNaN(t *testing.T) {
	tbl, err := table.New(
		[]string{"amount", "kind", "flag"},
		[][]string{{"", "2"}, {"a", "b"}, {"1", "0"}},
	)
	require.NoError(t, err)

	p := Build(features.Groups{
		Numeric:     []string{"amount"},
		Categorical: []string{"kind"},
		Boolean:     []string{"flag"},
		Target:      "y",
	})
	out, err := p.FitTransform(tbl)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.At(0, 0)))
	assert.Equal(t, float64(2), out.At(1, 0))
}

func TestTransform_EmptyTable(t *testing.T) {
	tbl := featureTable(t, []string{}, []string{})
	p := Build(features.DefaultGroups())
	require.NoError(t, p.Fit(tbl))

	_, err := p.Transform(tbl)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestRefitReplacesVocabulary(t *testing.T) {
	p := Build(features.DefaultGroups())
	require.NoError(t, p.Fit(featureTable(t, []string{"pos"}, []string{"False"})))
	require.NoError(t, p.Fit(featureTable(t, []string{"atm", "online"}, []string{"False", "True"})))

	vocab, err := p.Categories("transaction_type")
	require.NoError(t, err)
	assert.Equal(t, []string{"atm", "online"}, vocab)
}

func TestCategories_NotOneHot(t *testing.T) {
	p := Build(features.DefaultGroups())
	require.NoError(t, p.Fit(featureTable(t, []string{"pos"}, []string{"False"})))

	_, err := p.Categories("amount")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

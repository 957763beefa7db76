// Package features declares the fraud dataset's feature groups and separates
// the target column from the feature columns.
package features

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/fraudprep/internal/table"
	"github.com/dbsmedya/fraudprep/internal/types"
)

// Default column names of the transactions dataset.
var (
	DefaultNumeric = []string{
		"amount",
		"account_age_days",
		"num_transactions_last_24h",
		"avg_transaction_amount_7d",
	}
	DefaultCategorical = []string{"transaction_type"}
	DefaultBoolean     = []string{"is_international"}
)

// DefaultTarget is the binary fraud label column.
const DefaultTarget = "is_fraud"

// Groups is the static declaration of which columns feed which transform.
type Groups struct {
	Numeric     []string
	Categorical []string
	Boolean     []string
	Target      string
}

// DefaultGroups returns the transactions dataset declaration.
func DefaultGroups() Groups {
	return Groups{
		Numeric:     append([]string(nil), DefaultNumeric...),
		Categorical: append([]string(nil), DefaultCategorical...),
		Boolean:     append([]string(nil), DefaultBoolean...),
		Target:      DefaultTarget,
	}
}

// FeatureColumns returns numeric, categorical then boolean column names.
func (g Groups) FeatureColumns() []string {
	cols := make([]string, 0, len(g.Numeric)+len(g.Categorical)+len(g.Boolean))
	cols = append(cols, g.Numeric...)
	cols = append(cols, g.Categorical...)
	cols = append(cols, g.Boolean...)
	return cols
}

// Required returns every column the dataset must contain: the feature
// columns followed by the target.
func (g Groups) Required() []string {
	return append(g.FeatureColumns(), g.Target)
}

// Validate checks that the target is set and that no column is declared twice,
// either within a group, across groups, or as both feature and target.
func (g Groups) Validate() error {
	if g.Target == "" {
		return fmt.Errorf("%w: target column is not set", types.ErrInvalidArgument)
	}

	seen := make(map[string]string)
	check := func(group string, cols []string) error {
		for _, c := range cols {
			if c == "" {
				return fmt.Errorf("%w: empty column name in %s group", types.ErrInvalidArgument, group)
			}
			if c == g.Target {
				return fmt.Errorf("%w: target %q also declared as %s feature", types.ErrInvalidArgument, c, group)
			}
			if prev, ok := seen[c]; ok {
				return fmt.Errorf("%w: column %q declared in both %s and %s groups", types.ErrInvalidArgument, c, prev, group)
			}
			seen[c] = group
		}
		return nil
	}

	if err := check("numeric", g.Numeric); err != nil {
		return err
	}
	if err := check("categorical", g.Categorical); err != nil {
		return err
	}
	return check("boolean", g.Boolean)
}

// CheckTable reports a schema error listing every required column the table lacks.
func (g Groups) CheckTable(t *table.Table) error {
	if missing := t.Missing(g.Required()...); len(missing) > 0 {
		return fmt.Errorf("%w: missing required column(s) %s", types.ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

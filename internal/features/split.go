package features

import (
	"fmt"

	"github.com/dbsmedya/fraudprep/internal/table"
	"github.com/dbsmedya/fraudprep/internal/types"
)

// SplitFeaturesLabels separates the target column from the rest.
// The returned table keeps every other column in its original order; the
// labels are aligned row-for-row with it.
func SplitFeaturesLabels(t *table.Table, target string) (*table.Table, []string, error) {
	if !t.Has(target) {
		return nil, nil, fmt.Errorf("%w: target column %q not found", types.ErrSchema, target)
	}

	labels, err := t.Column(target)
	if err != nil {
		return nil, nil, err
	}

	feats, err := t.Drop(target)
	if err != nil {
		return nil, nil, err
	}

	return feats, labels, nil
}

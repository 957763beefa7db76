// Package table provides the column-oriented in-memory Table used by fraudprep.
package table

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/fraudprep/internal/types"
)

// Table is an ordered collection of named columns of string cells.
// All columns hold the same number of rows. A Table is never mutated after
// construction; Drop, Select and Take return new tables.
type Table struct {
	columns *orderedmap.OrderedMap[string, []string]
	rows    int
}

// New builds a Table from column names and column-major cells.
// It returns a parse error when names repeat, are empty, or the columns
// disagree on row count.
func New(names []string, columns [][]string) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d column names for %d columns", types.ErrParse, len(names), len(columns))
	}

	om := orderedmap.NewOrderedMap[string, []string]()
	rows := 0
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", types.ErrParse, i)
		}
		if _, dup := om.Get(name); dup {
			return nil, fmt.Errorf("%w: duplicate column %q", types.ErrParse, name)
		}
		if i == 0 {
			rows = len(columns[i])
		} else if len(columns[i]) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d",
				types.ErrParse, name, len(columns[i]), rows)
		}
		om.Set(name, columns[i])
	}

	return &Table{columns: om, rows: rows}, nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.columns.Len()
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	return t.columns.Keys()
}

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.columns.Get(name)
	return ok
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	cells, ok := t.columns.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: column %q not found", types.ErrSchema, name)
	}
	out := make([]string, len(cells))
	copy(out, cells)
	return out, nil
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= t.rows {
		return nil, fmt.Errorf("%w: row %d out of range [0,%d)", types.ErrInvalidArgument, i, t.rows)
	}
	out := make([]string, 0, t.columns.Len())
	for el := t.columns.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value[i])
	}
	return out, nil
}

// Missing returns the names from want that the table does not contain,
// in the order given.
func (t *Table) Missing(want ...string) []string {
	var missing []string
	for _, name := range want {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Drop returns a table without the named columns; remaining columns keep
// their order. Every name must exist.
func (t *Table) Drop(names ...string) (*Table, error) {
	if missing := t.Missing(names...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: cannot drop missing column(s) %s",
			types.ErrSchema, strings.Join(missing, ", "))
	}

	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	om := orderedmap.NewOrderedMap[string, []string]()
	for el := t.columns.Front(); el != nil; el = el.Next() {
		if !drop[el.Key] {
			om.Set(el.Key, el.Value)
		}
	}
	return &Table{columns: om, rows: t.rows}, nil
}

// Select returns a table with only the named columns, in the order given.
func (t *Table) Select(names ...string) (*Table, error) {
	if missing := t.Missing(names...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s",
			types.ErrSchema, strings.Join(missing, ", "))
	}

	om := orderedmap.NewOrderedMap[string, []string]()
	for _, name := range names {
		cells, _ := t.columns.Get(name)
		om.Set(name, cells)
	}
	return &Table{columns: om, rows: t.rows}, nil
}

// Take returns a table holding the given rows, in the order given.
// Indices must be in range; a repeated index yields a repeated row.
func (t *Table) Take(indices []int) (*Table, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= t.rows {
			return nil, fmt.Errorf("%w: row %d out of range [0,%d)", types.ErrInvalidArgument, idx, t.rows)
		}
	}

	om := orderedmap.NewOrderedMap[string, []string]()
	for el := t.columns.Front(); el != nil; el = el.Next() {
		cells := make([]string, len(indices))
		for i, idx := range indices {
			cells[i] = el.Value[idx]
		}
		om.Set(el.Key, cells)
	}
	return &Table{columns: om, rows: len(indices)}, nil
}

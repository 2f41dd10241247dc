package dataset

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned when a column name is not present.
var ErrUnknownColumn = errors.New("unknown column")

// Dataset exposes named, read-only columns of float64 values.
type Dataset interface {
	// Values returns the column with the given name. Callers must not
	// modify the returned slice.
	Values(column string) ([]float64, error)
	// Rows returns the number of rows in every column.
	Rows() int
	// Columns returns the column names in their original order.
	Columns() []string
}

// Table is an in-memory Dataset.
type Table struct {
	names   []string
	columns map[string][]float64
	rows    int
}

// NewTable builds a table from columns given in order. All columns must
// have the same length and names must be unique.
func NewTable(names []string, columns [][]float64) (*Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("got %d column names for %d columns", len(names), len(columns))
	}
	t := &Table{
		names:   append([]string(nil), names...),
		columns: make(map[string][]float64, len(names)),
	}
	for i, name := range names {
		if _, dup := t.columns[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		if i == 0 {
			t.rows = len(columns[i])
		} else if len(columns[i]) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(columns[i]), t.rows)
		}
		t.columns[name] = columns[i]
	}
	return t, nil
}

func (t *Table) Values(column string) ([]float64, error) {
	v, ok := t.columns[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	return v, nil
}

func (t *Table) Rows() int {
	return t.rows
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Select returns the values of column at the given rows, in order.
func Select(ds Dataset, column string, rows []int) ([]float64, error) {
	values, err := ds.Values(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(values) {
			return nil, fmt.Errorf("row %d out of range for column %q with %d rows", r, column, len(values))
		}
		out[i] = values[r]
	}
	return out, nil
}

package dataset

import (
	"errors"
	"fmt"
	"math"
)

var (
	errNoColumns   = errors.New("table has no columns")
	errEmptyName   = errors.New("column name required")
	errLengthMatch = errors.New("column length does not match table row count")
)

// Table is a rectangular, column-oriented dataset. Cells hold scalar
// values (float64, string, bool) or nil for missing. Columns keep
// their original order so downstream iteration is deterministic.
type Table struct {
	names []string
	cols  map[string][]any
	rows  int
}

// NewTable creates an empty table with the given row count.
func NewTable(rows int) *Table {
	return &Table{
		cols: make(map[string][]any),
		rows: rows,
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the raw cell values of the named column.
func (t *Table) Column(name string) ([]any, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// SetColumn inserts or replaces a column. The values slice must match
// the table row count.
func (t *Table) SetColumn(name string, values []any) error {
	if name == "" {
		return errEmptyName
	}
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %s has %d values, table has %d rows",
			errLengthMatch, name, len(values), t.rows)
	}
	if _, exists := t.cols[name]; !exists {
		t.names = append(t.names, name)
	}
	t.cols[name] = values
	return nil
}

// SetBools inserts or replaces a column of optional booleans. A nil
// entry marks a missing cell.
func (t *Table) SetBools(name string, values []*bool) error {
	cells := make([]any, len(values))
	for i, v := range values {
		if v != nil {
			cells[i] = *v
		}
	}
	return t.SetColumn(name, cells)
}

// IsNumeric reports whether the named column holds only float64
// values (ignoring missing cells) and at least one value is present.
func (t *Table) IsNumeric(name string) bool {
	col, ok := t.cols[name]
	if !ok {
		return false
	}
	seen := false
	for _, v := range col {
		if v == nil {
			continue
		}
		if _, isFloat := v.(float64); !isFloat {
			return false
		}
		seen = true
	}
	return seen
}

// Numeric returns the named column as float64 values with NaN marking
// missing cells. The second return is false when the column does not
// exist or holds non-numeric values.
func (t *Table) Numeric(name string) ([]float64, bool) {
	if !t.IsNumeric(name) {
		return nil, false
	}
	col := t.cols[name]
	out := make([]float64, len(col))
	for i, v := range col {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v.(float64)
	}
	return out, true
}

// NumericColumns returns the names of all numeric columns in column order.
func (t *Table) NumericColumns() []string {
	out := make([]string, 0, len(t.names))
	for _, name := range t.names {
		if t.IsNumeric(name) {
			out = append(out, name)
		}
	}
	return out
}

func (t *Table) validate() error {
	if len(t.names) == 0 {
		return errNoColumns
	}
	return nil
}

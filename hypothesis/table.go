package hypothesis

import "slices"

// Table is a set of rows, each identified by an int64 id and holding one
// float64 per named column.
type Table struct {
	columns []string
	index   map[string]int
	ids     []int64
	rows    [][]float64
}

// NewTable returns an empty table with the given columns. Duplicate names
// keep their first position.
func NewTable(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// TableFromSample builds a single column table with ids 0..len(s)-1.
func TableFromSample(column string, s Sample) *Table {
	t := NewTable(column)
	for i, v := range s {
		t.ids = append(t.ids, int64(i))
		t.rows = append(t.rows, []float64{v})
	}
	return t
}

// AddRow appends a row. values must line up with Columns().
func (t *Table) AddRow(id int64, values ...float64) error {
	if len(values) != len(t.columns) {
		return invalidf("row %d has %d values, table has %d columns", id, len(values), len(t.columns))
	}
	t.ids = append(t.ids, id)
	t.rows = append(t.rows, slices.Clone(values))
	return nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ids)
}

func (t *Table) Columns() []string { return slices.Clone(t.columns) }

func (t *Table) IDs() []int64 { return slices.Clone(t.ids) }

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the named column of row i.
func (t *Table) Value(i int, column string) (float64, bool) {
	c, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return 0, false
	}
	return t.rows[i][c], true
}

// Column copies one column out in row order.
func (t *Table) Column(name string) (Sample, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, invalidf("unknown column %q", name)
	}
	out := make(Sample, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out, nil
}

// filter returns a new table with the rows for which keep is true.
func (t *Table) filter(keep func(row []float64) bool) *Table {
	out := NewTable(t.columns...)
	for i, r := range t.rows {
		if keep(r) {
			out.ids = append(out.ids, t.ids[i])
			out.rows = append(out.rows, slices.Clone(r))
		}
	}
	return out
}

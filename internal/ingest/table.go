package ingest

import "fmt"

// Table is an in-memory tabular batch: an ordered header plus string rows.
// Column access is by name so quarters with drifted schemas can still be
// consolidated; a column absent from a table reads as empty for every row.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	colIdx map[string]int
}

// NewTable creates an empty table with the given column set
func NewTable(name string, columns []string) *Table {
	t := &Table{
		Name:    name,
		Columns: append([]string(nil), columns...),
		colIdx:  make(map[string]int, len(columns)),
	}
	for i, c := range t.Columns {
		t.colIdx[c] = i
	}
	return t
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIdx[name]
	return ok
}

// Value returns the cell at (row, column), or "" when the column does not
// exist or the row is ragged and too short to reach it.
func (t *Table) Value(row int, column string) string {
	idx, ok := t.colIdx[column]
	if !ok {
		return ""
	}
	if row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][idx]
}

// AppendRow adds a row. Short rows are accepted as-is; Value pads reads.
func (t *Table) AppendRow(row []string) {
	t.Rows = append(t.Rows, row)
}

// AddConstantColumn appends a column holding the same value for every
// existing row. Used to tag batches with period metadata.
func (t *Table) AddConstantColumn(name, value string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists in table %q", name, t.Name)
	}
	t.colIdx[name] = len(t.Columns)
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		// Pad ragged rows so the new column lands at its index
		for len(t.Rows[i]) < len(t.Columns)-1 {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i] = append(t.Rows[i], value)
	}
	return nil
}

// Append concatenates another table of the same record type onto this one,
// aligning columns by name. Columns unique to the other table are added and
// read as empty for pre-existing rows.
func (t *Table) Append(other *Table) {
	for _, c := range other.Columns {
		if !t.HasColumn(c) {
			t.colIdx[c] = len(t.Columns)
			t.Columns = append(t.Columns, c)
		}
	}
	for i := range other.Rows {
		row := make([]string, len(t.Columns))
		for _, c := range other.Columns {
			row[t.colIdx[c]] = other.Value(i, c)
		}
		t.Rows = append(t.Rows, row)
	}
}

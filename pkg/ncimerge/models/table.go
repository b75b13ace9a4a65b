package models

// CompoundColumn is the name of the shared first column of every merged table.
const CompoundColumn = "compound"

// Column is a named sequence of extracted field values.
type Column struct {
	// Name is the header of the column (compound or a sample name).
	Name string `json:"name"`
	// Values holds one trimmed field per extracted line.
	Values []string `json:"values"`
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	return len(c.Values)
}

// Table is a row-aligned grid of columns. Column 0 is the compound column.
//
// Table values are treated as immutable: WithColumn and WithoutRow return
// new tables and leave the receiver untouched.
type Table struct {
	Columns []Column `json:"columns"`
}

// Height returns the number of rows, taken from the compound column.
func (t Table) Height() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Header returns the column names in order.
func (t Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
	}
	return header
}

// Samples returns the sample column names, excluding the compound column.
func (t Table) Samples() []string {
	if len(t.Columns) < 2 {
		return nil
	}
	return t.Header()[1:]
}

// Records returns the table in row-major order, without the header.
// Missing cells in short columns are left empty.
func (t Table) Records() [][]string {
	height := t.Height()
	records := make([][]string, height)
	for r := 0; r < height; r++ {
		row := make([]string, len(t.Columns))
		for c, col := range t.Columns {
			if r < len(col.Values) {
				row[c] = col.Values[r]
			}
		}
		records[r] = row
	}
	return records
}

// WithColumn returns a copy of the table with col appended.
func (t Table) WithColumn(col Column) Table {
	columns := make([]Column, len(t.Columns), len(t.Columns)+1)
	copy(columns, t.Columns)
	return Table{Columns: append(columns, col)}
}

// WithoutRow returns a copy of the table with the zero-based row removed
// from every column. Out-of-range rows leave the copy unchanged; callers
// that need strict behaviour check Height first.
func (t Table) WithoutRow(row int) Table {
	columns := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		values := col.Values
		if row >= 0 && row < len(values) {
			next := make([]string, 0, len(values)-1)
			next = append(next, values[:row]...)
			next = append(next, values[row+1:]...)
			values = next
		}
		columns[i] = Column{Name: col.Name, Values: values}
	}
	return Table{Columns: columns}
}

package output

import (
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/parser"
)

// CoerceNumeric returns a copy of t in which sample values that are not
// numbers (N.D., blank fields, stray text) are emptied. The compound column
// is kept as is.
func CoerceNumeric(t models.Table) models.Table {
	out := models.Table{Columns: make([]models.Column, len(t.Columns))}
	for i, col := range t.Columns {
		if i == 0 {
			out.Columns[i] = col
			continue
		}
		values := make([]string, len(col.Values))
		for j, v := range col.Values {
			if parser.IsNumeric(v) {
				values[j] = v
			}
		}
		out.Columns[i] = models.Column{Name: col.Name, Values: values}
	}
	return out
}

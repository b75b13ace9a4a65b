package output

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/parser"
)

const (
	// WorkbookFile holds both tables as worksheets.
	WorkbookFile = "ncimerge.xlsx"
	// ResponsesSheet is the worksheet holding peak areas.
	ResponsesSheet = "peak_areas"
	// ConcentrationsSheet is the worksheet holding concentrations.
	ConcentrationsSheet = "concentrations"
)

// WriteWorkbook renders both tables into a new workbook. Sample values that
// parse as numbers are stored as numeric cells.
func WriteWorkbook(responses, concentrations models.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	first := f.GetSheetName(0)
	if err := f.SetSheetName(first, ResponsesSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(ConcentrationsSheet); err != nil {
		f.Close()
		return nil, err
	}

	for _, out := range []struct {
		sheet string
		table models.Table
	}{
		{ResponsesSheet, responses},
		{ConcentrationsSheet, concentrations},
	} {
		if err := writeSheet(f, out.sheet, out.table); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", out.sheet, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t models.Table) error {
	header := make([]interface{}, 0, len(t.Columns))
	for _, name := range t.Header() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for rowIdx, record := range t.Records() {
		row := make([]interface{}, len(record))
		for colIdx, value := range record {
			if colIdx == 0 {
				// Compound names stay text even when they look numeric.
				row[colIdx] = value
				continue
			}
			row[colIdx] = parser.ParseValue(value)
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// SaveWorkbook writes ncimerge.xlsx into dir and returns its path.
func SaveWorkbook(dir string, responses, concentrations models.Table) (string, error) {
	f, err := WriteWorkbook(responses, concentrations)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, WorkbookFile)
	if err := writeAll([]artifact{{path: path, data: buf.Bytes()}}); err != nil {
		return "", err
	}
	return path, nil
}

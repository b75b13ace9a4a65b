package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
)

const (
	// ResponsesFile holds the merged peak areas.
	ResponsesFile = "peak_areas.csv"
	// ConcentrationsFile holds the merged concentrations.
	ConcentrationsFile = "concentrations.csv"
)

// WriteCSV writes the header and every row of t to w.
func WriteCSV(w io.Writer, t models.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range t.Records() {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes peak_areas.csv and concentrations.csv into dir and returns
// the written paths.
func SaveCSV(dir string, responses, concentrations models.Table) ([]string, error) {
	var artifacts []artifact
	for _, out := range []struct {
		name  string
		table models.Table
	}{
		{ResponsesFile, responses},
		{ConcentrationsFile, concentrations},
	} {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, out.table); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact{path: filepath.Join(dir, out.name), data: buf.Bytes()})
	}

	if err := writeAll(artifacts); err != nil {
		return nil, err
	}
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.path
	}
	return paths, nil
}

package ncimerge

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/parser"
)

const (
	responsesTable      = "responses"
	concentrationsTable = "concentrations"
)

// Assembler merges located reports into the responses and concentrations tables.
type Assembler struct {
	// ReadFile reads a report. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error)
	// Logger receives per-file progress. Nil disables logging.
	Logger *zap.Logger
}

// Assemble merges files with the default Assembler.
func Assemble(files []models.LocatedFile, specs Specs, rowToDrop *int) (responses, concentrations models.Table, err error) {
	return Assembler{}.Assemble(files, specs, rowToDrop)
}

// accumulator is the value threaded through the fold over located files.
type accumulator struct {
	responses      models.Table
	concentrations models.Table
}

// Assemble folds files, in order, into two tables sharing the first file's
// compound column, then removes rowToDrop from both when it is set.
func (a Assembler) Assemble(files []models.LocatedFile, specs Specs, rowToDrop *int) (responses, concentrations models.Table, err error) {
	if len(files) == 0 {
		return models.Table{}, models.Table{}, ErrNoFiles
	}
	logger := a.logger()
	warnDuplicateSamples(logger, files)

	var acc accumulator
	for _, file := range files {
		acc, err = a.step(acc, file, specs)
		if err != nil {
			return models.Table{}, models.Table{}, err
		}
	}

	if rowToDrop != nil {
		acc, err = dropRow(acc, *rowToDrop)
		if err != nil {
			return models.Table{}, models.Table{}, err
		}
		logger.Info("Dropped row", zap.Int("row", *rowToDrop))
	}

	return acc.responses, acc.concentrations, nil
}

// step extracts one report and returns the accumulator with its columns
// appended. The first report also contributes the compound column.
func (a Assembler) step(acc accumulator, file models.LocatedFile, specs Specs) (accumulator, error) {
	data, err := a.readFile(file.Path)
	if err != nil {
		return acc, &IOError{Op: "read", Path: file.Path, Err: err}
	}
	if !utf8.Valid(data) {
		return acc, &IOError{Op: "read", Path: file.Path, Err: ErrInvalidUTF8}
	}
	text := string(data)

	if len(acc.responses.Columns) == 0 {
		compounds := models.Column{Name: models.CompoundColumn, Values: parser.Extract(text, specs.Name)}
		acc = accumulator{
			responses:      acc.responses.WithColumn(compounds),
			concentrations: acc.concentrations.WithColumn(compounds),
		}
	}

	responses, err := appendColumn(acc.responses, responsesTable, file, parser.Extract(text, specs.Response))
	if err != nil {
		return acc, err
	}
	concentrations, err := appendColumn(acc.concentrations, concentrationsTable, file, parser.Extract(text, specs.Concentration))
	if err != nil {
		return acc, err
	}

	a.logger().Debug("Merged report",
		zap.String("sample", file.SampleName),
		zap.String("path", file.Path),
		zap.Int("rows", responses.Height()))

	return accumulator{responses: responses, concentrations: concentrations}, nil
}

// appendColumn adds values to t under the file's sample name, rejecting a
// column whose length differs from the compound column.
func appendColumn(t models.Table, table string, file models.LocatedFile, values []string) (models.Table, error) {
	if len(values) != t.Height() {
		return t, &AssemblyError{
			Table:  table,
			Sample: file.SampleName,
			Path:   file.Path,
			Want:   t.Height(),
			Got:    len(values),
		}
	}
	return t.WithColumn(models.Column{Name: file.SampleName, Values: values}), nil
}

// dropRow removes the same row from both tables, or neither.
func dropRow(acc accumulator, row int) (accumulator, error) {
	for _, t := range []struct {
		name  string
		table models.Table
	}{
		{responsesTable, acc.responses},
		{concentrationsTable, acc.concentrations},
	} {
		if row < 0 || row >= t.table.Height() {
			return acc, &AssemblyError{
				Table: t.name,
				Want:  t.table.Height(),
				Got:   row,
				Err:   ErrRowOutOfRange,
			}
		}
	}
	return accumulator{
		responses:      acc.responses.WithoutRow(row),
		concentrations: acc.concentrations.WithoutRow(row),
	}, nil
}

func warnDuplicateSamples(logger *zap.Logger, files []models.LocatedFile) {
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if first, ok := seen[f.SampleName]; ok {
			logger.Warn("Sample name used by more than one report",
				zap.String("sample", f.SampleName),
				zap.String("first", first),
				zap.String("path", f.Path))
			continue
		}
		seen[f.SampleName] = f.Path
	}
}

func (a Assembler) readFile(name string) ([]byte, error) {
	if a.ReadFile != nil {
		return a.ReadFile(name)
	}
	return os.ReadFile(name)
}

func (a Assembler) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

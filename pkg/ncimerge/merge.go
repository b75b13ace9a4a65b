package ncimerge

import (
	"go.uber.org/zap"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/locator"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
)

// Result holds the merged tables of one run.
type Result struct {
	// Files lists the merged reports in column order.
	Files []models.LocatedFile `json:"files"`
	// Responses holds peak areas, one column per sample.
	Responses models.Table `json:"responses"`
	// Concentrations holds concentrations, one column per sample.
	Concentrations models.Table `json:"concentrations"`
}

// Merge locates every report under opts.Root and merges them.
func Merge(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.logger()

	files, err := locator.Locate(opts.Root, opts.Filename, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Located reports",
		zap.String("root", opts.Root),
		zap.String("file", opts.Filename),
		zap.Int("count", len(files)))

	asm := Assembler{ReadFile: opts.ReadFile, Logger: logger}
	responses, concentrations, err := asm.Assemble(files, opts.Layout.Specs(), opts.RowToDrop)
	if err != nil {
		return nil, err
	}

	return &Result{
		Files:          files,
		Responses:      responses,
		Concentrations: concentrations,
	}, nil
}

// Package locator finds instrument reports below a project root.
package locator

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/models"
)

// NotFoundError reports a matched file whose parent directory has no name
// that could serve as a sample identifier.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("parent folder not found for %q", e.Path)
}

// Locate walks root and returns every regular file whose base name ends with
// filename, paired with the name of its parent directory. Entries that cannot
// be read during the walk are skipped.
func Locate(root, filename string, logger *zap.Logger) ([]models.LocatedFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var files []models.LocatedFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), filename) {
			return nil
		}

		sample, ok := sampleName(path)
		if !ok {
			return &NotFoundError{Path: path}
		}
		logger.Debug("Located report", zap.String("path", path), zap.String("sample", sample))
		files = append(files, models.LocatedFile{Path: path, SampleName: sample})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// sampleName returns the base name of the directory containing path.
func sampleName(path string) (string, bool) {
	dir := filepath.Dir(path)
	name := filepath.Base(dir)
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "", false
	}
	return name, true
}

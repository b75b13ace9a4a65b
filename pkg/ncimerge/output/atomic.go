// Package output writes merged tables as CSV, workbooks or terminal text.
package output

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge"
)

var errIsDirectory = errors.New("destination is a directory")

// rename is replaced in tests to fail a commit midway.
var rename = os.Rename

// artifact is a fully rendered output file waiting to be written.
type artifact struct {
	path string
	data []byte
}

// staged tracks one artifact between staging and commit.
type staged struct {
	dest   string
	tmp    string
	backup string
	done   bool
}

// writeAll writes the artifacts as a set: every file is staged in a
// temporary file next to its destination before any destination is touched.
// If a rename fails, destinations already replaced are restored and all
// temporary files are removed, so either every file is written or none is.
func writeAll(artifacts []artifact) (err error) {
	files := make([]*staged, 0, len(artifacts))
	defer func() {
		if err != nil {
			rollback(files)
		}
	}()

	for _, a := range artifacts {
		s, err := stage(a)
		if s != nil {
			files = append(files, s)
		}
		if err != nil {
			return err
		}
	}
	for _, s := range files {
		if err := s.preserve(); err != nil {
			return err
		}
	}
	for _, s := range files {
		if err := rename(s.tmp, s.dest); err != nil {
			return &ncimerge.IOError{Op: "write", Path: s.dest, Err: err}
		}
		s.done = true
	}
	for _, s := range files {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
	}
	return nil
}

func stage(a artifact) (*staged, error) {
	tmp, err := os.CreateTemp(filepath.Dir(a.path), ".tmp-*")
	if err != nil {
		return nil, &ncimerge.IOError{Op: "create", Path: a.path, Err: err}
	}
	s := &staged{dest: a.path, tmp: tmp.Name()}
	_ = os.Chmod(s.tmp, 0o644)

	if _, err := tmp.Write(a.data); err != nil {
		_ = tmp.Close()
		return s, &ncimerge.IOError{Op: "write", Path: a.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return s, &ncimerge.IOError{Op: "write", Path: a.path, Err: err}
	}
	return s, nil
}

// preserve moves an existing destination aside so a failed commit can put
// it back. Destinations that are directories are refused up front.
func (s *staged) preserve() error {
	info, err := os.Lstat(s.dest)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ncimerge.IOError{Op: "write", Path: s.dest, Err: err}
	}
	if info.IsDir() {
		return &ncimerge.IOError{Op: "write", Path: s.dest, Err: errIsDirectory}
	}

	bak, err := os.CreateTemp(filepath.Dir(s.dest), ".bak-*")
	if err != nil {
		return &ncimerge.IOError{Op: "create", Path: s.dest, Err: err}
	}
	_ = bak.Close()
	if err := os.Rename(s.dest, bak.Name()); err != nil {
		_ = os.Remove(bak.Name())
		return &ncimerge.IOError{Op: "write", Path: s.dest, Err: err}
	}
	s.backup = bak.Name()
	return nil
}

func rollback(files []*staged) {
	for _, s := range files {
		switch {
		case s.done && s.backup != "":
			_ = os.Rename(s.backup, s.dest)
		case s.done:
			_ = os.Remove(s.dest)
		default:
			_ = os.Remove(s.tmp)
			if s.backup != "" {
				_ = os.Rename(s.backup, s.dest)
			}
		}
	}
}

package ncimerge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/locator"
)

// ErrNoFiles indicates that no report matched the target file name.
var ErrNoFiles = errors.New("no matching files found")

// ErrInvalidUTF8 indicates a report whose contents are not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// ErrRowOutOfRange indicates a row to drop beyond the table height.
var ErrRowOutOfRange = errors.New("row to drop is out of range")

// NotFoundError reports a located file without a usable sample directory.
type NotFoundError = locator.NotFoundError

// ConfigError represents a missing or invalid configuration value.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Err: err}
}

// ValidationError converts a validator result into a *ConfigError naming
// the first failing field. Other errors are wrapped unchanged.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewConfigError("", err)
	}
	fe := fieldErrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	if fe.Param() != "" {
		return NewConfigError(field, fmt.Errorf("value %v fails %s=%s", fe.Value(), fe.Tag(), fe.Param()))
	}
	return NewConfigError(field, fmt.Errorf("value %v fails %s", fe.Value(), fe.Tag()))
}

// IOError represents a report or output file that could not be read or written.
type IOError struct {
	Op   string // "read", "create", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// AssemblyError represents a column that cannot be aligned with its table.
type AssemblyError struct {
	Table  string // "responses" or "concentrations"
	Sample string
	Path   string
	Want   int
	Got    int
	Err    error
}

func (e *AssemblyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assembly error in %s table: %v (row %d, height %d)", e.Table, e.Err, e.Got, e.Want)
	}
	return fmt.Sprintf("assembly error in %s table: sample %q (%s) has %d rows, expected %d",
		e.Table, e.Sample, e.Path, e.Got, e.Want)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Package ncimerge merges fixed-width NCI quantitation reports into
// compound-by-sample tables.
package ncimerge

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/parser"
)

// DefaultFilename is the report name written by the 5973 NCI quant method.
const DefaultFilename = "a-all.txt"

// Field locates one column of the report by byte offset and width.
type Field struct {
	// Start is the zero-based byte offset of the column.
	Start int `yaml:"start" validate:"gte=0"`
	// Width is the column width in bytes.
	Width int `yaml:"width" validate:"gt=0"`
}

// Layout describes where the three extracted columns sit in every report.
// HeaderSkip and RowCount apply to all three columns.
type Layout struct {
	Name          Field `yaml:"name"`
	Response      Field `yaml:"response"`
	Concentration Field `yaml:"concentration"`
	// HeaderSkip is the number of leading lines to ignore.
	HeaderSkip int `yaml:"rows_to_skip_beginning" split_words:"true" validate:"gte=0"`
	// RowCount is the number of lines read after the header.
	RowCount int `yaml:"rows_to_take" split_words:"true" validate:"gte=0"`
}

// DefaultLayout returns the column layout of the stock a-all.txt report.
func DefaultLayout() Layout {
	return Layout{
		Name:          Field{Start: 8, Width: 20},
		Response:      Field{Start: 49, Width: 6},
		Concentration: Field{Start: 56, Width: 9},
		HeaderSkip:    19,
		RowCount:      25,
	}
}

// Specs is the set of column specs derived from one Layout.
type Specs struct {
	Name          parser.ColumnSpec
	Response      parser.ColumnSpec
	Concentration parser.ColumnSpec
}

// Specs derives the name, response and concentration column specs.
func (l Layout) Specs() Specs {
	spec := func(f Field) parser.ColumnSpec {
		return parser.ColumnSpec{
			Start:      f.Start,
			Width:      f.Width,
			HeaderSkip: l.HeaderSkip,
			RowCount:   l.RowCount,
		}
	}
	return Specs{
		Name:          spec(l.Name),
		Response:      spec(l.Response),
		Concentration: spec(l.Concentration),
	}
}

// Options configures a merge run.
type Options struct {
	// Root is the project directory holding one subdirectory per sample.
	Root string `validate:"required"`
	// Filename is matched as a suffix against every file name under Root.
	Filename string `validate:"required"`
	// Layout positions the extracted columns.
	Layout Layout
	// RowToDrop, when set, removes that zero-based row from both tables.
	RowToDrop *int `validate:"omitempty,gte=0"`
	// Logger receives progress logs. Nil disables logging.
	Logger *zap.Logger `validate:"-"`
	// ReadFile reads a located report. Nil means os.ReadFile.
	ReadFile func(name string) ([]byte, error) `validate:"-"`
}

// DefaultOptions returns options for root with the stock file name and layout.
func DefaultOptions(root string) Options {
	return Options{
		Root:     root,
		Filename: DefaultFilename,
		Layout:   DefaultLayout(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the options and returns a *ConfigError for the first
// offending field.
func (o Options) Validate() error {
	return ValidationError(validate.Struct(o))
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

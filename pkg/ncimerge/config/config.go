// Package config builds the typed run configuration from defaults, an
// optional YAML file and NCIMERGE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge"
)

// EnvPrefix prefixes every environment variable, e.g. NCIMERGE_NAME_START.
const EnvPrefix = "NCIMERGE"

// Format selects the saved output.
type Format string

const (
	// FormatCSV writes peak_areas.csv and concentrations.csv.
	FormatCSV Format = "csv"
	// FormatXLSX writes a single workbook with one sheet per table.
	FormatXLSX Format = "xlsx"
)

// Config is the complete run configuration.
type Config struct {
	// Root is the project directory.
	Root string `yaml:"path" validate:"required"`
	// File is the report name suffix to look for.
	File string `yaml:"file" validate:"required"`
	// Save writes the tables to Root; otherwise they are printed.
	Save bool `yaml:"save"`
	// Format selects csv or xlsx output when saving.
	Format Format `yaml:"format" validate:"oneof=csv xlsx"`
	// CoerceNumeric blanks sample values that are not numbers.
	CoerceNumeric bool `yaml:"coerce_numeric" split_words:"true"`
	// RowToDrop removes one zero-based row from both tables.
	RowToDrop *int `yaml:"row_to_drop" split_words:"true" validate:"omitempty,gte=0"`

	ncimerge.Layout `yaml:",inline"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		File:   ncimerge.DefaultFilename,
		Save:   true,
		Format: FormatCSV,
		Layout: ncimerge.DefaultLayout(),
	}
}

// LoadFile overlays the keys present in the YAML file at path onto cfg.
// Unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return &ncimerge.IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return ncimerge.NewConfigError(path, err)
	}
	return nil
}

// LoadEnv overlays NCIMERGE_* environment variables onto cfg. Variables
// that are not set leave the current value untouched.
func LoadEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		var pe *envconfig.ParseError
		if errors.As(err, &pe) {
			return ncimerge.NewConfigError(pe.KeyName, fmt.Errorf("cannot parse %q as %s", pe.Value, pe.TypeName))
		}
		return ncimerge.NewConfigError(EnvPrefix, err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks cfg and returns a *ncimerge.ConfigError for the first
// offending field.
func (c Config) Validate() error {
	return ncimerge.ValidationError(validate.Struct(c))
}

// Options converts cfg into merge options.
func (c Config) Options(logger *zap.Logger) ncimerge.Options {
	return ncimerge.Options{
		Root:      c.Root,
		Filename:  c.File,
		Layout:    c.Layout,
		RowToDrop: c.RowToDrop,
		Logger:    logger,
	}
}

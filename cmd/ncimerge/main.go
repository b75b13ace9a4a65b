// Package main provides the CLI entry point for ncimerge.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/ncimerge-go/pkg/ncimerge"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/config"
	"github.com/ukaji3/ncimerge-go/pkg/ncimerge/output"
)

var (
	configPath    string
	rootPath      string
	fileName      string
	save          string
	format        string
	coerceNumeric bool
	verbose       bool

	nameStarts          int
	nameWidth           int
	responseStarts      int
	responseWidth       int
	concStarts          int
	concWidth           int
	rowsToSkipBeginning int
	rowsToTake          int
	rowToDrop           int

	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.Default()

	rootCmd := &cobra.Command{
		Use:   "ncimerge",
		Short: "Merge peak areas and concentrations from Agilent 5973 (NCI) reports",
		Long: `ncimerge walks a project directory, reads every quantitation report
(a-all.txt by default) found in the sample subdirectories and merges the
peak areas and concentrations into two tables: one row per compound and
one column per sample.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logger != nil {
				return nil
			}
			zapConfig := zap.NewProductionConfig()
			if verbose {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML file with the column layout and run settings")
	flags.StringVarP(&rootPath, "path", "p", "", `The root directory of the project. For instance, C:\Users\myname\myproject.`)
	flags.StringVarP(&fileName, "file", "f", defaults.File, "The common file name that contains the peak areas and concentration data.")
	flags.StringVar(&save, "save", strconv.FormatBool(defaults.Save), "Set to true to save files. Set to false to display the tables on the command line.")
	flags.StringVar(&format, "format", string(defaults.Format), "Output format when saving: csv or xlsx")
	flags.BoolVar(&coerceNumeric, "coerce-numeric", false, "Blank out sample values that are not numbers")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	flags.IntVar(&nameStarts, "name_starts", defaults.Name.Start, "The starting position of the name column.")
	flags.IntVar(&nameWidth, "name_width", defaults.Name.Width, "The width of the name column.")
	flags.IntVar(&responseStarts, "response_starts", defaults.Response.Start, "The starting position of the response column.")
	flags.IntVar(&responseWidth, "response_width", defaults.Response.Width, "The width of the response column.")
	flags.IntVar(&concStarts, "conc_starts", defaults.Concentration.Start, "The starting position of the concentration column.")
	flags.IntVar(&concWidth, "conc_width", defaults.Concentration.Width, "The width of the concentration column.")
	flags.IntVar(&rowsToSkipBeginning, "rows_to_skip_beginning", defaults.HeaderSkip, "The number of rows to skip at the beginning of the file.")
	flags.IntVar(&rowsToTake, "rows_to_take", defaults.RowCount, "The number of rows to process after the skipped rows.")
	flags.IntVar(&rowToDrop, "row_to_drop", 0, "The zero-based row to exclude from both tables. For instance, 3.")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Validate input directory exists
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return fmt.Errorf("directory not found: %s", cfg.Root)
	}

	result, err := ncimerge.Merge(cfg.Options(logger))
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	responses, concentrations := result.Responses, result.Concentrations
	if cfg.CoerceNumeric {
		responses = output.CoerceNumeric(responses)
		concentrations = output.CoerceNumeric(concentrations)
	}

	out := cmd.OutOrStdout()
	if !cfg.Save {
		fmt.Fprintln(out, "\nSuccess! Your files have been extracted. Please check for potential formatting errors. When you're ready to save your files, rerun with --save true.")
		fmt.Fprintln(out, output.Render("Extracted peak areas", responses))
		fmt.Fprintln(out, output.Render("Extracted concentrations", concentrations))
		return nil
	}

	switch cfg.Format {
	case config.FormatXLSX:
		if _, err := output.SaveWorkbook(cfg.Root, responses, concentrations); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	default:
		if _, err := output.SaveCSV(cfg.Root, responses, concentrations); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	logger.Info("Saved tables",
		zap.String("root", cfg.Root),
		zap.String("format", string(cfg.Format)),
		zap.Int("samples", len(result.Files)),
		zap.Int("rows", responses.Height()))
	fmt.Fprintf(out, "\nSuccess! Files were saved at %s.\n", cfg.Root)
	return nil
}

// loadConfig layers defaults, the YAML file, the environment and the flags
// that were set explicitly, then validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		if err := config.LoadFile(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := config.LoadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	strs := []struct {
		name string
		src  string
		dst  *string
	}{
		{"path", rootPath, &cfg.Root},
		{"file", fileName, &cfg.File},
	}
	for _, s := range strs {
		if flags.Changed(s.name) {
			*s.dst = s.src
		}
	}

	ints := []struct {
		name string
		src  int
		dst  *int
	}{
		{"name_starts", nameStarts, &cfg.Name.Start},
		{"name_width", nameWidth, &cfg.Name.Width},
		{"response_starts", responseStarts, &cfg.Response.Start},
		{"response_width", responseWidth, &cfg.Response.Width},
		{"conc_starts", concStarts, &cfg.Concentration.Start},
		{"conc_width", concWidth, &cfg.Concentration.Width},
		{"rows_to_skip_beginning", rowsToSkipBeginning, &cfg.HeaderSkip},
		{"rows_to_take", rowsToTake, &cfg.RowCount},
	}
	for _, i := range ints {
		if flags.Changed(i.name) {
			*i.dst = i.src
		}
	}

	if flags.Changed("row_to_drop") {
		row := rowToDrop
		cfg.RowToDrop = &row
	}
	if flags.Changed("format") {
		cfg.Format = config.Format(format)
	}
	if flags.Changed("coerce-numeric") {
		cfg.CoerceNumeric = coerceNumeric
	}
	if flags.Changed("save") {
		v, err := strconv.ParseBool(save)
		if err != nil {
			return ncimerge.NewConfigError("save", fmt.Errorf("failed to parse %q as bool", save))
		}
		cfg.Save = v
	}
	return nil
}

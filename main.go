package main

import (
	"fmt"
	"io"
	"os"

	"sheetconv/adapters/output"
	"sheetconv/adapters/render"
	"sheetconv/adapters/source"
	"sheetconv/app"
	"sheetconv/internal"
	"sheetconv/internal/config"
	"sheetconv/internal/errors"
	"sheetconv/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var settingsPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sheetconv",
		Short: "Convert a spreadsheet into a JSON or PHP array file",
		Long: `Convert the first sheet (or a named sheet) of a workbook into a JSON
array of objects or PHP associative array literals.

Row 1 supplies the keys. Data rows are read from row 2 until the first row
whose column A is empty. Settings are read from settings.json in the working
directory unless --settings or SHEETCONV_SETTINGS names another file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), config.SettingsPath(settingsPath), dryRun)
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Path to the settings JSON file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the converted output instead of writing outputFile")

	return cmd
}

func run(stdout io.Writer, settingsPath string, dryRun bool) error {
	// Load .env file if it exists; a missing file is fine
	_ = godotenv.Load()

	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	logger := internal.NewDefaultLogger()
	if level, ok := internal.ParseLogLevel(settings.LogLevel); ok {
		logger.SetLevel(level)
	}

	fmt.Fprintf(stdout, "converting to %s\n", settings.OutputFileType)

	renderer, err := render.ForFormat(settings.OutputFileType)
	if err != nil {
		return err
	}

	src, err := source.Open(source.Request{
		DataFile:  settings.DataFile,
		DataSheet: settings.DataSheet,
		Encoding:  settings.DataEncoding,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn("failed to close %s: %v", settings.DataFile, cerr)
		}
	}()

	var sink ports.OutputSink = output.NewFileSink(settings.OutputFile)
	memory := output.NewMemorySink()
	if dryRun {
		sink = memory
	}

	svc := app.NewConversionService(renderer, sink, logger)
	result, err := svc.Convert(app.ConversionRequest{Source: src})
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(stdout, memory.String())
	}

	logger.Debug("run %s: sheet %q, %d columns, %d bytes in %s",
		result.RunID, src.SheetName(), len(result.Columns), result.BytesWritten, result.Duration)
	fmt.Fprintf(stdout, "conversion complete (%d records)\n", result.Records)
	return nil
}

// reportError prints a leading line naming the failure category followed by
// the error chain
func reportError(w io.Writer, err error) {
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid:
		fmt.Fprintln(w, "configuration error:")
	case errors.CodeDataSource:
		fmt.Fprintln(w, "data source error:")
	case errors.CodeConversion:
		fmt.Fprintln(w, "conversion failed, output may be incomplete:")
	default:
		fmt.Fprintln(w, "error:")
	}
	fmt.Fprintf(w, "  %v\n", err)
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/harrison/inliner/internal/config"
	"github.com/harrison/inliner/internal/display"
	"github.com/harrison/inliner/internal/fileutil"
	"github.com/harrison/inliner/internal/logger"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <root-file-or-directory>...",
		Short: "Verify that root files expand without errors",
		Long: `Expand one or more root files without writing output and report
whether every include resolves.

Directories are scanned for source files by extension
(default: .c, .cc, .cpp, .cxx). Hidden directories are skipped.

Exit code: 0 if every file expands, 1 otherwise

Examples:
  inliner check src/a.cpp -I include
  inliner check src/ --recursive --ext .cpp --exclude build -I include`,
		Args: cobra.MinimumNArgs(1),
		RunE: checkCommand,
	}

	cmd.Flags().StringSlice("ext", nil, "File extensions to scan in directories (repeatable)")
	cmd.Flags().BoolP("recursive", "r", false, "Scan directories recursively")
	cmd.Flags().StringSlice("exclude", nil, "Directory names to skip while scanning")

	return cmd
}

func checkCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	exts, _ := cmd.Flags().GetStringSlice("ext")
	recursive, _ := cmd.Flags().GetBool("recursive")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	files, scanErrs, err := collectRoots(args, fileutil.ScanOptions{
		Extensions:  exts,
		Recursive:   recursive,
		ExcludeDirs: exclude,
	})
	if err != nil {
		return err
	}
	if len(scanErrs) > 0 {
		warnScanErrors(scanErrs).Display(cmd.ErrOrStderr())
	}
	if len(files) == 0 && len(scanErrs) == 0 {
		return fmt.Errorf("no source files found")
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	return runCheck(cfg, files, len(scanErrs), log, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// scanSources is replaced in tests to inject walk failures.
var scanSources = fileutil.ScanSources

// collectRoots expands directory arguments into the source files they hold.
// Paths that could not be walked are returned separately so the caller can
// count them as failures.
func collectRoots(paths []string, opts fileutil.ScanOptions) ([]string, []error, error) {
	var files []string
	var scanErrs []error
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to access path: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		result, err := scanSources(path, opts)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, result.Files...)
		scanErrs = append(scanErrs, result.Errors...)
	}
	return files, scanErrs, nil
}

func warnScanErrors(errs []error) display.Warning {
	items := make([]string, len(errs))
	for i, err := range errs {
		items[i] = err.Error()
	}
	title := "1 path could not be scanned"
	if len(errs) != 1 {
		title = fmt.Sprintf("%d paths could not be scanned", len(errs))
	}
	return display.Warning{
		Title:      title,
		Message:    "Source files below these paths were not checked",
		Items:      items,
		Suggestion: "Fix permissions or pass --exclude for directories to skip",
	}
}

// runCheck expands every file into io.Discard. unscanned paths count as
// failures so a partial scan never reports a clean result.
func runCheck(cfg *config.Config, files []string, unscanned int, log logger.Logger, out, errOut io.Writer) error {
	in := newInliner(cfg, log, errOut)

	progress := display.NewProgressIndicator(out, len(files))
	progress.Start()
	for _, file := range files {
		err := in.Expand(file, io.Discard)
		progress.Step(file, err == nil)
	}
	progress.Complete()

	if failed := progress.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed to expand", failed, len(files))
	}
	if unscanned > 0 {
		return fmt.Errorf("directory scan incomplete (%d errors)", unscanned)
	}
	return nil
}

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/inliner/internal/config"
	"github.com/harrison/inliner/internal/filelock"
	"github.com/harrison/inliner/internal/inliner"
	"github.com/harrison/inliner/internal/logger"
	"github.com/harrison/inliner/internal/resolver"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <root-file>",
		Short: "Expand a root file and its includes into one output file",
		Long: `Expand a root file by replacing every #include line with the
recursively expanded content of the file it references.

If an include cannot be resolved, the command fails and the output file
keeps everything written up to the failing line.

While running, the output is guarded by an advisory lock on
"<output>.lock". The lock file is left in place afterwards and can be
ignored or added to .gitignore. Use --no-lock to skip locking.

Examples:
  # Write src/a.in from src/a.cpp
  inliner build src/a.cpp -I include1 -I include2

  # Explicit output path
  inliner build src/a.cpp -o dist/bundle.cpp -I include

  # Trace every candidate path tried during resolution
  inliner build src/a.cpp -I include --log-level trace`,
		Args: cobra.ExactArgs(1),
		RunE: buildCommand,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: root file with .in extension)")
	cmd.Flags().Bool("no-lock", false, "Do not lock the output file during the run")

	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	root := args[0]
	output := cfg.Output
	if output == "" {
		output = defaultOutput(root)
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	return runBuild(cfg, root, output, log, cmd.ErrOrStderr())
}

// guardSources refuses an output that is one of the files the build reads.
// The output is truncated before any input is opened, so such a build would
// destroy its own source.
func guardSources(search resolver.SearchPath, root, output string) error {
	if filepath.Clean(root) == filepath.Clean(output) {
		return fmt.Errorf("output %s would overwrite the root file", output)
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		return nil
	}

	tree, _ := inliner.New(search, inliner.WithCycleDetection(true)).Tree(root)
	var clash *inliner.Node
	tree.Walk(func(n *inliner.Node) {
		if clash != nil {
			return
		}
		if info, err := os.Stat(n.Path); err == nil && os.SameFile(outInfo, info) {
			clash = n
		}
	})

	switch {
	case clash == nil:
		return nil
	case clash == tree:
		return fmt.Errorf("output %s would overwrite the root file", output)
	default:
		return fmt.Errorf("output %s would overwrite included file %s", output, clash.Path)
	}
}

// defaultOutput replaces the root file's extension with ".in".
func defaultOutput(root string) string {
	return strings.TrimSuffix(root, filepath.Ext(root)) + ".in"
}

// runBuild preprocesses root into output, holding the output lock when configured.
func runBuild(cfg *config.Config, root, output string, log logger.Logger, errOut io.Writer) error {
	in := newInliner(cfg, log, errOut)
	if err := guardSources(in.SearchPath(), root, output); err != nil {
		return err
	}
	searchPath := "none"
	if in.SearchPath().Len() > 0 {
		searchPath = strings.Join(in.SearchPath().Dirs(), ", ")
	}
	log.LogInfo(fmt.Sprintf("building %s -> %s (search path: %s)", root, output, searchPath))

	start := time.Now()
	preprocess := func() error {
		return in.Preprocess(root, output)
	}

	var runErr error
	if cfg.LockOutput {
		runErr = filelock.WithOutputLock(output, cfg.WaitForLock, preprocess)
	} else {
		runErr = preprocess()
	}

	stats := in.Stats()
	log.LogSummary(logger.RunSummary{
		Root:     root,
		Output:   output,
		Files:    stats.Files,
		Lines:    stats.Lines,
		Duration: time.Since(start),
		Err:      runErr,
	})

	if runErr != nil {
		if !inliner.IsFailure(runErr) {
			return runErr
		}
		// The diagnostic has already been logged where the failure happened.
		return fmt.Errorf("build of %s failed", root)
	}
	return nil
}

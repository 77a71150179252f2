package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/harrison/inliner/internal/config"
	"github.com/harrison/inliner/internal/display"
	"github.com/harrison/inliner/internal/logger"
	"github.com/spf13/cobra"
)

// NewDepsCommand creates the deps command
func NewDepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <root-file>",
		Short: "Print the include tree of a root file",
		Long: `Resolve every include reachable from a root file and print the
resulting tree without writing any output file.

Each entry shows the resolved path, the directive that pulled it in and
the line of that directive in the including file. If an include cannot
be resolved, the tree up to that point is printed and the command fails.

Example:
  inliner deps src/a.cpp -I include1 -I include2`,
		Args: cobra.ExactArgs(1),
		RunE: depsCommand,
	}

	return cmd
}

func depsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	return runDeps(cfg, args[0], log, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runDeps(cfg *config.Config, root string, log logger.Logger, out, errOut io.Writer) error {
	in := newInliner(cfg, log, errOut)

	tree, err := in.Tree(root)

	// Paths below the root's directory are shown relative to it.
	display.PrintTree(out, tree, filepath.Dir(root))
	fmt.Fprintf(out, "files: %d\n", tree.Count())

	if err != nil {
		return fmt.Errorf("include tree of %s is incomplete", root)
	}
	return nil
}

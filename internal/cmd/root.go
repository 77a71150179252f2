package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for inliner
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inliner",
		Short: "Flatten #include trees into a single file",
		Long: `Inliner bundles a root source file and everything it includes into
one output file, replacing each #include line with the expanded content
of the file it names.

Quoted includes ("path") are looked up next to the including file first,
then in the search directories. Angle includes (<path>) are looked up in
the search directories only. The first match wins.

Configuration is loaded from .inliner/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: .inliner/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (default from config)")
	cmd.PersistentFlags().StringArrayP("include-dir", "I", nil, "Search directory for includes, in precedence order (repeatable)")
	cmd.PersistentFlags().Bool("detect-cycles", false, "Fail on recursive includes instead of recursing without bound")

	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewDepsCommand())
	cmd.AddCommand(NewCheckCommand())

	return cmd
}

package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/inliner/internal/config"
	"github.com/harrison/inliner/internal/display"
	"github.com/harrison/inliner/internal/fileutil"
	"github.com/harrison/inliner/internal/inliner"
	"github.com/harrison/inliner/internal/logger"
	"github.com/harrison/inliner/internal/resolver"
	"github.com/spf13/cobra"
)

// loadSettings loads the config file and applies flag overrides.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var searchDirs []string
	var output, logLevel *string
	var detectCycles, lockOutput *bool

	if cmd.Flags().Changed("include-dir") {
		searchDirs, _ = cmd.Flags().GetStringArray("include-dir")
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("output")
		output = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("detect-cycles") {
		v, _ := cmd.Flags().GetBool("detect-cycles")
		detectCycles = &v
	}
	if f := cmd.Flags().Lookup("no-lock"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("no-lock")
		v = !v
		lockOutput = &v
	}

	cfg.MergeWithFlags(searchDirs, output, logLevel, detectCycles, lockOutput)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger, plus a file logger when enabled.
// The returned close function must be called when the run is over.
func newLogger(cfg *config.Config, errOut io.Writer) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(errOut, cfg.LogLevel)
	if !cfg.FileLog {
		return console, func() {}, nil
	}

	fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	console.LogDebug(fmt.Sprintf("run %s logging to %s", fileLogger.RunID(), fileLogger.Path()))

	return logger.NewMultiLogger(console, fileLogger), func() { fileLogger.Close() }, nil
}

// newInliner warns about missing search directories and builds the Inliner.
func newInliner(cfg *config.Config, log logger.Logger, errOut io.Writer, opts ...inliner.Option) *inliner.Inliner {
	if missing := fileutil.MissingDirs(cfg.SearchDirs); len(missing) > 0 {
		display.WarnMissingSearchDirs(missing).Display(errOut)
	}

	opts = append([]inliner.Option{
		inliner.WithLogger(log),
		inliner.WithCycleDetection(cfg.DetectCycles),
	}, opts...)

	return inliner.New(resolver.NewSearchPath(cfg.SearchDirs...), opts...)
}

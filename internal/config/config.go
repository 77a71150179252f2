// Package config loads inliner settings from YAML and merges them with
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/inliner/internal/logger"
	"gopkg.in/yaml.v3"
)

// DirName is the per-project directory holding config and logs.
const DirName = ".inliner"

// Config represents inliner configuration options
type Config struct {
	// SearchDirs is the ordered list of include search directories
	SearchDirs []string `yaml:"search_dirs"`

	// Output is the default output path when none is given on the command line
	Output string `yaml:"output"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where per-run logs are written
	LogDir string `yaml:"log_dir"`

	// FileLog enables per-run log files in LogDir
	FileLog bool `yaml:"file_log"`

	// LockOutput takes an advisory lock on the output for the duration of a run
	LockOutput bool `yaml:"lock_output"`

	// WaitForLock blocks until the output lock is free instead of failing
	WaitForLock bool `yaml:"wait_for_lock"`

	// DetectCycles fails on recursive includes instead of recursing without bound
	DetectCycles bool `yaml:"detect_cycles"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		SearchDirs:   nil,
		Output:       "",
		LogLevel:     "info",
		LogDir:       filepath.Join(DirName, "logs"),
		FileLog:      false,
		LockOutput:   true,
		WaitForLock:  false,
		DetectCycles: false,
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults without error; a malformed file is an error.
// Relative search_dirs are resolved against the project directory the file
// belongs to.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from an explicit false/empty value.
	type yamlConfig struct {
		SearchDirs   []string `yaml:"search_dirs"`
		Output       *string  `yaml:"output"`
		LogLevel     *string  `yaml:"log_level"`
		LogDir       *string  `yaml:"log_dir"`
		FileLog      *bool    `yaml:"file_log"`
		LockOutput   *bool    `yaml:"lock_output"`
		WaitForLock  *bool    `yaml:"wait_for_lock"`
		DetectCycles *bool    `yaml:"detect_cycles"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.SearchDirs != nil {
		base := projectDir(path)
		cfg.SearchDirs = make([]string, 0, len(yamlCfg.SearchDirs))
		for _, dir := range yamlCfg.SearchDirs {
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(base, dir)
			}
			cfg.SearchDirs = append(cfg.SearchDirs, dir)
		}
	}
	if yamlCfg.Output != nil {
		cfg.Output = *yamlCfg.Output
	}
	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}
	if yamlCfg.FileLog != nil {
		cfg.FileLog = *yamlCfg.FileLog
	}
	if yamlCfg.LockOutput != nil {
		cfg.LockOutput = *yamlCfg.LockOutput
	}
	if yamlCfg.WaitForLock != nil {
		cfg.WaitForLock = *yamlCfg.WaitForLock
	}
	if yamlCfg.DetectCycles != nil {
		cfg.DetectCycles = *yamlCfg.DetectCycles
	}

	return cfg, nil
}

// LoadConfigFromDir loads .inliner/config.yaml from dir
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DirName, "config.yaml"))
}

// projectDir returns the directory relative paths in a config file refer to:
// the parent of .inliner when the file lives there, otherwise its own directory.
func projectDir(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == DirName {
		return filepath.Dir(dir)
	}
	return dir
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values. Disabling the output
// lock also clears WaitForLock.
func (c *Config) MergeWithFlags(searchDirs []string, output *string, logLevel *string, detectCycles *bool, lockOutput *bool) {
	if searchDirs != nil {
		c.SearchDirs = append([]string(nil), searchDirs...)
	}
	if output != nil {
		c.Output = *output
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if detectCycles != nil {
		c.DetectCycles = *detectCycles
	}
	if lockOutput != nil {
		c.LockOutput = *lockOutput
		if !c.LockOutput {
			c.WaitForLock = false
		}
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	for i, dir := range c.SearchDirs {
		if dir == "" {
			return fmt.Errorf("search_dirs[%d] cannot be empty", i)
		}
	}

	if c.FileLog && c.LogDir == "" {
		return fmt.Errorf("log_dir cannot be empty when file_log is enabled")
	}

	if c.WaitForLock && !c.LockOutput {
		return fmt.Errorf("wait_for_lock requires lock_output")
	}

	return nil
}

// Package logger provides the logging implementations used by inliner.
//
// Every implementation satisfies Logger, filters by level (trace, debug,
// info, warn, error) and is safe for concurrent use. ConsoleLogger writes
// timestamped lines to a writer with optional colour, FileLogger keeps a
// per-run log under the configured log directory, and MultiLogger fans out to
// several loggers at once.
package logger

import (
	"strings"
	"time"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the logging surface the preprocessor and command layer depend on.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogSummary(summary RunSummary)
}

// RunSummary describes the outcome of a single preprocessing run.
type RunSummary struct {
	Root     string
	Output   string
	Files    int
	Lines    int
	Duration time.Duration
	Err      error
}

// ValidLevels lists the accepted level names, most verbose first.
var ValidLevels = []string{"trace", "debug", "info", "warn", "error"}

// IsValidLevel reports whether level names a known log level.
func IsValidLevel(level string) bool {
	for _, l := range ValidLevels {
		if l == level {
			return true
		}
	}
	return false
}

// normalizeLogLevel lowercases and validates a level, defaulting to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if IsValidLevel(normalized) {
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders short durations in ms and longer ones in seconds.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards all messages.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)       {}
func (n *NoOpLogger) LogDebug(message string)       {}
func (n *NoOpLogger) LogInfo(message string)        {}
func (n *NoOpLogger) LogWarn(message string)        {}
func (n *NoOpLogger) LogError(message string)       {}
func (n *NoOpLogger) LogSummary(summary RunSummary) {}

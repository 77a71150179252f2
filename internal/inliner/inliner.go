// Package inliner flattens a tree of text files connected by #include
// directives into a single output.
//
// Each directive line is replaced by the recursively expanded content of the
// file it references. All other lines are copied verbatim, each terminated by
// a single "\n". Expansion is depth-first and synchronous; the output is
// written in the textual order of the directives.
//
// The first failure aborts the whole expansion. Output written before the
// failing line stays in place and nothing is rolled back:
//
//	err := inliner.Preprocess("src/a.cpp", "out/a.in",
//	    resolver.NewSearchPath("include1", "include2"))
//	if errors.Is(err, inliner.ErrUnresolved) {
//	    // out/a.in holds everything up to the failing directive
//	}
//
// Every failure is reported once through the Logger set with WithLogger, at
// the point where it happened. Without a logger nothing is printed and the
// returned error's message is the diagnostic.
//
// Include cycles are not detected unless WithCycleDetection is set; without
// it a self-including file recurses until the stack is exhausted.
package inliner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/inliner/internal/directive"
	"github.com/harrison/inliner/internal/logger"
	"github.com/harrison/inliner/internal/resolver"
)

// Stats counts what a run has done so far.
type Stats struct {
	// Files is the number of input files opened, root included.
	Files int
	// Lines is the number of plain lines written.
	Lines int
}

// Inliner expands include directives against a fixed search path.
// An Inliner is not safe for concurrent use.
type Inliner struct {
	search       resolver.SearchPath
	resolver     *resolver.Resolver
	logger       logger.Logger
	detectCycles bool
	trace        func(Event)

	active map[string]bool
	stats  Stats
}

// Option configures an Inliner.
type Option func(*Inliner)

// WithLogger sets the logger used for diagnostics. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(in *Inliner) {
		if l != nil {
			in.logger = l
		}
	}
}

// WithCycleDetection makes re-entering a file that is still being expanded
// fail with ErrCycle instead of recursing without bound.
func WithCycleDetection(enabled bool) Option {
	return func(in *Inliner) {
		in.detectCycles = enabled
	}
}

// WithTrace registers a callback invoked for every resolved include, before
// the included file is expanded.
func WithTrace(fn func(Event)) Option {
	return func(in *Inliner) {
		in.trace = fn
	}
}

// New creates an Inliner that resolves includes against search.
func New(search resolver.SearchPath, opts ...Option) *Inliner {
	in := &Inliner{
		search: search,
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.resolver = resolver.New(search, resolver.WithProbe(func(candidate string, found bool) {
		if found {
			in.logger.LogTrace(fmt.Sprintf("probe %s: found", candidate))
		} else {
			in.logger.LogTrace(fmt.Sprintf("probe %s: missing", candidate))
		}
	}))
	return in
}

// SearchPath returns the search path includes are resolved against.
func (in *Inliner) SearchPath() resolver.SearchPath {
	return in.search
}

// Stats returns the counters of the most recent Preprocess call, or the
// running totals of Expand calls made since.
func (in *Inliner) Stats() Stats {
	return in.stats
}

// Preprocess expands rootFile into outputFile using search. It is shorthand
// for New(search, opts...).Preprocess(rootFile, outputFile).
func Preprocess(rootFile, outputFile string, search resolver.SearchPath, opts ...Option) error {
	return New(search, opts...).Preprocess(rootFile, outputFile)
}

// Preprocess creates (or truncates) outputFile and expands rootFile into it.
// A partially written output is left on disk when expansion fails.
func (in *Inliner) Preprocess(rootFile, outputFile string) error {
	in.stats = Stats{}

	f, err := os.Create(outputFile)
	if err != nil {
		return in.fail(&IncludeError{File: outputFile, Err: fmt.Errorf("%w: %w", ErrOpen, err)})
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	expandErr := in.Expand(rootFile, w)

	// Flush on every path so a failed run still leaves its prefix on disk.
	if err := w.Flush(); err != nil && expandErr == nil {
		return in.fail(&IncludeError{File: outputFile, Err: fmt.Errorf("%w: %w", ErrWrite, err)})
	}
	if expandErr != nil {
		return expandErr
	}
	if err := f.Close(); err != nil {
		return in.fail(&IncludeError{File: outputFile, Err: fmt.Errorf("%w: %w", ErrWrite, err)})
	}
	return nil
}

// Expand writes the expansion of file to out.
func (in *Inliner) Expand(file string, out io.Writer) error {
	if in.detectCycles && in.active == nil {
		in.active = make(map[string]bool)
	}
	return in.expand(file, out, nil, 0)
}

// site is where an include was requested from. It is nil for the root file.
type site struct {
	ref  string
	file string
	line int
}

func (in *Inliner) expand(file string, out io.Writer, from *site, depth int) error {
	f, err := os.Open(file)
	if err != nil {
		openErr := fmt.Errorf("%w: %w", ErrOpen, err)
		if from == nil {
			return in.fail(&IncludeError{File: file, Err: openErr})
		}
		return in.fail(&IncludeError{Ref: from.ref, File: from.file, Line: from.line, Err: openErr})
	}
	defer f.Close()
	in.stats.Files++

	if in.detectCycles {
		key := canonical(file)
		in.active[key] = true
		defer delete(in.active, key)
	}

	in.logger.LogDebug(fmt.Sprintf("expanding %s (depth %d)", file, depth))

	dir := filepath.Dir(file)
	r := bufio.NewReader(f)

	line := 0
	for {
		text, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return in.fail(&IncludeError{File: file, Line: line + 1, Err: fmt.Errorf("%w: %w", ErrRead, readErr)})
		}
		if text == "" {
			break
		}
		line++
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")

		d := directive.Classify(text)
		if !d.IsInclude() {
			if _, err := io.WriteString(out, text+"\n"); err != nil {
				return in.fail(&IncludeError{File: file, Line: line, Err: fmt.Errorf("%w: %w", ErrWrite, err)})
			}
			in.stats.Lines++
		} else if err := in.include(d, file, dir, line, out, depth); err != nil {
			return err
		}

		if readErr != nil {
			break
		}
	}
	return nil
}

// include resolves d and expands the file it names in place.
func (in *Inliner) include(d directive.Directive, file, dir string, line int, out io.Writer, depth int) error {
	target, err := in.resolver.Resolve(d, dir)
	if err != nil {
		return in.fail(&IncludeError{Ref: d.Ref, File: file, Line: line, Err: fmt.Errorf("%w: %w", ErrUnresolved, err)})
	}

	if in.detectCycles && in.active[canonical(target)] {
		return in.fail(&IncludeError{Ref: d.Ref, File: file, Line: line, Err: fmt.Errorf("%w: %s", ErrCycle, target)})
	}

	if in.trace != nil {
		in.trace(Event{Depth: depth + 1, From: file, Line: line, Directive: d, Resolved: target})
	}

	// Nested failures have already been reported where they happened.
	return in.expand(target, out, &site{ref: d.Ref, file: file, line: line}, depth+1)
}

// fail emits the single diagnostic for a failure and returns it.
func (in *Inliner) fail(err *IncludeError) error {
	in.logger.LogError(err.Error())
	return err
}

// canonical returns an absolute, symlink-free identity for path, falling back
// to the cleaned absolute path when the file cannot be evaluated.
func canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// IsFailure reports whether err carries the location of an expansion failure.
func IsFailure(err error) bool {
	var ie *IncludeError
	return errors.As(err, &ie)
}

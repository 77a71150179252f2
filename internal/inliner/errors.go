package inliner

import (
	"errors"
	"fmt"
)

// Failure classes. Every error returned by the package wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	// ErrOpen indicates the root file, an include target or the output could not be opened.
	ErrOpen = errors.New("cannot open file")
	// ErrUnresolved indicates an include reference matched no candidate location.
	ErrUnresolved = errors.New("unresolved include")
	// ErrRead indicates a failure while reading lines from an input file.
	ErrRead = errors.New("read failed")
	// ErrWrite indicates a failure while writing to the output.
	ErrWrite = errors.New("write failed")
	// ErrCycle indicates a file that is already being expanded was included
	// again. Only reported when cycle detection is enabled.
	ErrCycle = errors.New("include cycle")
)

// IncludeError locates a failure. File is the file being scanned when the
// failure happened, which is not necessarily the root, and Line is the
// 1-based line within it. Ref is the include reference text, empty when the
// failure is not tied to a directive (root or output open failures).
type IncludeError struct {
	Ref  string
	File string
	Line int
	Err  error
}

func (e *IncludeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnresolved):
		return fmt.Sprintf("unknown include file %s at file %s at line %d", e.Ref, e.File, e.Line)
	case e.Ref != "":
		return fmt.Sprintf("cannot include %s at file %s at line %d: %v", e.Ref, e.File, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s at line %d: %v", e.File, e.Line, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

// Package resolver maps include references to concrete files.
//
// Quoted and angle includes are resolved with deliberately different
// policies:
//
//   - quoted: the including file's directory first, then the search path in order
//   - angle: the search path in order only, the including file's directory is never probed
//
// In both cases the first candidate that exists wins and later directories are
// not examined.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/inliner/internal/directive"
	"github.com/harrison/inliner/internal/fileutil"
)

// ErrNotFound is returned when no candidate location holds the referenced file.
var ErrNotFound = errors.New("include file not found")

// SearchPath is an ordered list of directories consulted when resolving
// includes. Earlier entries take precedence.
type SearchPath struct {
	dirs []string
}

// NewSearchPath builds a SearchPath from dirs. The slice is copied so later
// changes by the caller do not affect resolution.
func NewSearchPath(dirs ...string) SearchPath {
	cp := make([]string, len(dirs))
	copy(cp, dirs)
	return SearchPath{dirs: cp}
}

// Dirs returns a copy of the directories in precedence order.
func (sp SearchPath) Dirs() []string {
	cp := make([]string, len(sp.dirs))
	copy(cp, sp.dirs)
	return cp
}

// Len returns the number of directories.
func (sp SearchPath) Len() int {
	return len(sp.dirs)
}

// Resolver resolves include directives against a fixed SearchPath.
type Resolver struct {
	search SearchPath
	exists func(string) bool
	probe  func(candidate string, found bool)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithProbe registers a callback invoked for every candidate path checked,
// in the order they are checked.
func WithProbe(fn func(candidate string, found bool)) Option {
	return func(r *Resolver) {
		r.probe = fn
	}
}

// withExists swaps the existence check. Tests only.
func withExists(fn func(string) bool) Option {
	return func(r *Resolver) {
		r.exists = fn
	}
}

// New creates a Resolver for the given search path.
func New(search SearchPath, opts ...Option) *Resolver {
	r := &Resolver{
		search: search,
		exists: fileutil.Exists,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SearchPath returns the search path the resolver was built with.
func (r *Resolver) SearchPath() SearchPath {
	return r.search
}

// Resolve returns the path of the file referenced by d. includingDir is the
// directory of the file containing the directive and is only consulted for
// quoted includes.
func (r *Resolver) Resolve(d directive.Directive, includingDir string) (string, error) {
	// An empty reference would join to the directory itself.
	if d.IsInclude() && d.Ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	switch d.Kind {
	case directive.Quoted:
		if candidate := filepath.Join(includingDir, d.Ref); r.check(candidate) {
			return candidate, nil
		}
		return r.searchDirs(d.Ref)
	case directive.Angle:
		return r.searchDirs(d.Ref)
	default:
		return "", fmt.Errorf("line is not an include directive")
	}
}

// searchDirs walks the search path in order and stops at the first match.
func (r *Resolver) searchDirs(ref string) (string, error) {
	for _, dir := range r.search.dirs {
		if candidate := filepath.Join(dir, ref); r.check(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
}

func (r *Resolver) check(candidate string) bool {
	found := r.exists(candidate)
	if r.probe != nil {
		r.probe(candidate, found)
	}
	return found
}

// Package directive classifies single lines of text as include directives or
// plain content.
//
// Matching is purely syntactic and line-oriented. A line is a directive only
// when the whole line, allowing surrounding whitespace, has one of the shapes
//
//	#include "path"
//	#include <path>
//
// with optional whitespace between '#', 'include' and the delimiter. There is
// no awareness of comments, string literals or conditional blocks, so a
// directive-shaped line inside a function body is still a directive.
package directive

import (
	"regexp"
	"strings"
)

// Kind identifies how a line was classified.
type Kind int

const (
	// Plain is any line that is not an include directive.
	Plain Kind = iota
	// Quoted is an include of the form #include "path".
	Quoted
	// Angle is an include of the form #include <path>.
	Angle
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Quoted:
		return "quoted"
	case Angle:
		return "angle"
	default:
		return "plain"
	}
}

// Both patterns are anchored so they only match the entire line.
var (
	quotedPattern = regexp.MustCompile(`^\s*#\s*include\s*"([^"]*)"\s*$`)
	anglePattern  = regexp.MustCompile(`^\s*#\s*include\s*<([^>]*)>\s*$`)
)

// Directive is the classification of one line. Ref holds the literal text
// between the delimiters and is empty for Plain lines.
type Directive struct {
	Kind Kind
	Ref  string
}

// IsInclude reports whether the directive references another file.
func (d Directive) IsInclude() bool {
	return d.Kind != Plain
}

// String renders the directive back in its canonical form.
func (d Directive) String() string {
	switch d.Kind {
	case Quoted:
		return `#include "` + d.Ref + `"`
	case Angle:
		return "#include <" + d.Ref + ">"
	default:
		return ""
	}
}

// Classify determines whether line is a quoted include, an angle include or
// plain text. A single trailing carriage return is ignored.
func Classify(line string) Directive {
	line = strings.TrimSuffix(line, "\r")

	if m := quotedPattern.FindStringSubmatch(line); m != nil {
		return Directive{Kind: Quoted, Ref: m[1]}
	}
	if m := anglePattern.FindStringSubmatch(line); m != nil {
		return Directive{Kind: Angle, Ref: m[1]}
	}
	return Directive{Kind: Plain}
}

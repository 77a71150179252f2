package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/harrison/inliner/internal/inliner"
)

// PrintTree writes an indented include tree. Paths are shown relative to
// relTo when it is non-empty and the path lies beneath it.
func PrintTree(out io.Writer, root *inliner.Node, relTo string) {
	if root == nil {
		return
	}
	fmt.Fprintln(out, shortPath(root.Path, relTo))
	printChildren(out, root.Children, "", relTo)
}

func printChildren(out io.Writer, children []*inliner.Node, prefix, relTo string) {
	for i, child := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		fmt.Fprintf(out, "%s%s%s  (%s, line %d)\n", prefix, branch, shortPath(child.Path, relTo), child.Directive, child.Line)
		printChildren(out, child.Children, prefix+next, relTo)
	}
}

func shortPath(path, relTo string) string {
	if relTo == "" {
		return path
	}
	rel, err := filepath.Rel(relTo, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

package inliner

import (
	"io"

	"github.com/harrison/inliner/internal/directive"
)

// Event describes one resolved include.
type Event struct {
	// Depth of the included file; the root is depth 0.
	Depth int
	// From is the file containing the directive.
	From string
	// Line is the 1-based line of the directive within From.
	Line int
	// Directive is the recognized directive.
	Directive directive.Directive
	// Resolved is the file the directive resolved to.
	Resolved string
}

// Node is one file in an include tree.
type Node struct {
	Path      string
	Directive directive.Directive
	Line      int
	Children  []*Node
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Walk calls fn for n and every node below it, depth-first in include order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Tree expands root without producing output and returns the include tree.
// On failure the tree built so far is returned together with the error.
func (in *Inliner) Tree(root string) (*Node, error) {
	top := &Node{Path: root}
	stack := []*Node{top}

	prev := in.trace
	in.trace = func(e Event) {
		// Events arrive depth-first, so the parent is always at Depth-1.
		stack = stack[:e.Depth]
		node := &Node{Path: e.Resolved, Directive: e.Directive, Line: e.Line}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)

		if prev != nil {
			prev(e)
		}
	}
	defer func() { in.trace = prev }()

	err := in.Expand(root, io.Discard)
	return top, err
}

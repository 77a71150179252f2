package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Items      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, item := range w.Items {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, item)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnMissingSearchDirs builds the warning shown when configured search
// directories do not exist.
func WarnMissingSearchDirs(dirs []string) Warning {
	title := "Search directory not found"
	if len(dirs) != 1 {
		title = fmt.Sprintf("%d search directories not found", len(dirs))
	}
	return Warning{
		Title:      title,
		Message:    "Includes will not be resolved from these locations",
		Items:      dirs,
		Suggestion: "Check -I flags and search_dirs in .inliner/config.yaml",
	}
}

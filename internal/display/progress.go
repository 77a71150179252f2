package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ProgressIndicator reports per-file results of a batch check
type ProgressIndicator struct {
	writer  io.Writer
	total   int
	current int
	failed  int
}

// NewProgressIndicator creates a new progress indicator for total files
func NewProgressIndicator(w io.Writer, total int) *ProgressIndicator {
	return &ProgressIndicator{
		writer: w,
		total:  total,
	}
}

// Start displays the header message
func (p *ProgressIndicator) Start() {
	fmt.Fprintf(p.writer, "Checking %d files:\n", p.total)
}

// Step displays "[N/Total] file" followed by ok or FAILED
func (p *ProgressIndicator) Step(file string, ok bool) {
	p.current++
	status := color.New(color.FgGreen).Sprint("ok")
	if !ok {
		p.failed++
		status = color.New(color.FgRed).Sprint("FAILED")
	}
	fmt.Fprintf(p.writer, "  [%d/%d] %s %s\n", p.current, p.total, file, status)
}

// Failed returns the number of failed steps so far
func (p *ProgressIndicator) Failed() int {
	return p.failed
}

// Complete displays the final tally
func (p *ProgressIndicator) Complete() {
	if p.failed == 0 {
		fmt.Fprintf(p.writer, "%s %d files expanded cleanly\n", color.New(color.FgGreen).Sprint("✓"), p.current)
		return
	}
	fmt.Fprintf(p.writer, "%s %d of %d files failed\n", color.New(color.FgRed).Sprint("✗"), p.failed, p.current)
}

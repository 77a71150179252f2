package display

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/harrison/inliner/internal/directive"
	"github.com/harrison/inliner/internal/inliner"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestWarning_Display(t *testing.T) {
	t.Run("title only", func(t *testing.T) {
		var buf bytes.Buffer
		Warning{Title: "Something odd"}.Display(&buf)
		assert.Equal(t, "Warning: Something odd\n", buf.String())
	})

	t.Run("all parts", func(t *testing.T) {
		var buf bytes.Buffer
		Warning{
			Title:      "T",
			Message:    "M",
			Items:      []string{"a", "b"},
			Suggestion: "S",
		}.Display(&buf)
		assert.Equal(t, "Warning: T\n    M\n      1. a\n      2. b\n    Suggestion: S\n", buf.String())
	})
}

func TestWarnMissingSearchDirs(t *testing.T) {
	one := WarnMissingSearchDirs([]string{"inc"})
	assert.Equal(t, "Search directory not found", one.Title)
	assert.Equal(t, []string{"inc"}, one.Items)

	two := WarnMissingSearchDirs([]string{"a", "b"})
	assert.Equal(t, "2 search directories not found", two.Title)
}

func TestProgressIndicator(t *testing.T) {
	t.Run("all ok", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressIndicator(&buf, 2)
		p.Start()
		p.Step("a.c", true)
		p.Step("b.c", true)
		p.Complete()

		assert.Equal(t, "Checking 2 files:\n  [1/2] a.c ok\n  [2/2] b.c ok\n✓ 2 files expanded cleanly\n", buf.String())
		assert.Zero(t, p.Failed())
	})

	t.Run("with failures", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewProgressIndicator(&buf, 2)
		p.Step("a.c", false)
		p.Step("b.c", true)
		p.Complete()

		assert.Contains(t, buf.String(), "[1/2] a.c FAILED")
		assert.Contains(t, buf.String(), "✗ 1 of 2 files failed")
		assert.Equal(t, 1, p.Failed())
	})
}

func TestPrintTree(t *testing.T) {
	tree := &inliner.Node{
		Path: "/src/a.cpp",
		Children: []*inliner.Node{
			{
				Path:      "/src/dir1/b.h",
				Directive: directive.Directive{Kind: directive.Quoted, Ref: "dir1/b.h"},
				Line:      2,
				Children: []*inliner.Node{
					{Path: "/inc/std1.h", Directive: directive.Directive{Kind: directive.Angle, Ref: "std1.h"}, Line: 2},
				},
			},
			{Path: "/src/dir1/d.h", Directive: directive.Directive{Kind: directive.Quoted, Ref: "dir1/d.h"}, Line: 4},
		},
	}

	var buf bytes.Buffer
	PrintTree(&buf, tree, "/src")

	want := "a.cpp\n" +
		"├── dir1/b.h  (#include \"dir1/b.h\", line 2)\n" +
		"│   └── /inc/std1.h  (#include <std1.h>, line 2)\n" +
		"└── dir1/d.h  (#include \"dir1/d.h\", line 4)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTree_Nil(t *testing.T) {
	var buf bytes.Buffer
	PrintTree(&buf, nil, "")
	assert.Empty(t, buf.String())
}

// Package display renders user-facing output for the inliner commands:
// warnings, batch progress and include trees.
//
// Warnings:
//
//	w := display.WarnMissingSearchDirs([]string{"include3"})
//	w.Display(os.Stderr)
//
// Batch progress when checking many roots:
//
//	progress := display.NewProgressIndicator(os.Stdout, len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file, check(file) == nil)
//	}
//	progress.Complete()
//
// Include trees, as produced by inliner.Tree:
//
//	display.PrintTree(os.Stdout, tree, "")
//
// Colours come from fatih/color and are dropped automatically when output is
// not a terminal or NO_COLOR is set. All functions take an io.Writer.
package display

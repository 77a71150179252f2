// Package fileutil holds the filesystem helpers shared by the resolver and the
// command layer.
//
// Exists and IsDir are the only probes the resolver uses: resolution is a pure
// existence check at call time and never looks at file content.
//
// ScanSources walks a directory tree and collects candidate root files by
// extension, skipping hidden directories and any names listed in
// ScanOptions.ExcludeDirs. Results are absolute and sorted so batch checks
// report in a stable order.
//
//	result, err := fileutil.ScanSources("src", fileutil.ScanOptions{
//	    Extensions:  []string{".c", ".cpp"},
//	    Recursive:   true,
//	    ExcludeDirs: []string{"build"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
//
// Non-fatal walk errors (an unreadable subdirectory) are collected in
// ScanResult.Errors and the walk continues.
package fileutil

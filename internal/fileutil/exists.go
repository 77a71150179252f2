package fileutil

import (
	"os"
)

// Exists reports whether anything exists at path. Directories count.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MissingDirs returns the entries of dirs that do not exist or are not
// directories, preserving order.
func MissingDirs(dirs []string) []string {
	var missing []string
	for _, dir := range dirs {
		if !IsDir(dir) {
			missing = append(missing, dir)
		}
	}
	return missing
}

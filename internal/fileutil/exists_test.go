package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExistsAndIsDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "f.h")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, Exists(file))
	assert.True(t, Exists(tmpDir))
	assert.False(t, Exists(filepath.Join(tmpDir, "missing.h")))

	assert.True(t, IsDir(tmpDir))
	assert.False(t, IsDir(file))
	assert.False(t, IsDir(filepath.Join(tmpDir, "missing")))
}

func TestMissingDirs(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "f.h")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	missing := filepath.Join(tmpDir, "missing")

	assert.Equal(t, []string{file, missing}, MissingDirs([]string{tmpDir, file, missing}))
	assert.Nil(t, MissingDirs([]string{tmpDir}))
	assert.Nil(t, MissingDirs(nil))
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrison/inliner/internal/filelock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommand_UnresolvedInclude(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, sourcesTree)
	rootFile := filepath.Join(root, "a.cpp")

	_, stderr, err := execute(t, "build", rootFile,
		"-I", filepath.Join(root, "include1"),
		"-I", filepath.Join(root, "include2"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build of "+rootFile+" failed")

	data, readErr := os.ReadFile(filepath.Join(root, "a.in"))
	require.NoError(t, readErr)
	assert.Equal(t, sourcesExpected, string(data))

	assert.Equal(t, 1, strings.Count(stderr, "unknown include file"), "one diagnostic line, got:\n%s", stderr)
	assert.Contains(t, stderr, "unknown include file dummy.txt at file "+rootFile+" at line 8")
	assert.Contains(t, stderr, "failed, 6 files, 13 lines")
}

func TestBuildCommand_Success(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/main.c":    "#include \"util.h\"\nint main() {}\n",
		"src/util.h":    "#include <sys.h>\nint util();\n",
		"include/sys.h": "int sys();\n",
	})
	out := filepath.Join(root, "bundle.c")

	_, stderr, err := execute(t, "build", filepath.Join(root, "src", "main.c"),
		"-o", out, "-I", filepath.Join(root, "include"))

	require.NoError(t, err)
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "int sys();\nint util();\nint main() {}\n", string(data))
	assert.Contains(t, stderr, "ok, 3 files, 3 lines")
	assert.Contains(t, stderr, "(search path: "+filepath.Join(root, "include")+")")
}

func TestBuildCommand_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c":               "#include <lib.h>\n",
		"vendor/lib.h":         "lib\n",
		".inliner/config.yaml": "search_dirs: [vendor]\noutput: out.txt\nlog_level: warn\n",
	})
	out := filepath.Join(root, "cfg-out.txt")

	_, stderr, err := execute(t, "build", filepath.Join(root, "main.c"),
		"--config", filepath.Join(root, ".inliner", "config.yaml"),
		"-o", out)

	require.NoError(t, err)
	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "lib\n", string(data))
	assert.NotContains(t, stderr, "[INFO]", "log_level from config applies")
}

func TestBuildCommand_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"main.c": "x\n"})

	_, _, err := execute(t, "build", filepath.Join(root, "main.c"), "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestBuildCommand_MissingSearchDirWarning(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"main.c": "x\n"})
	missing := filepath.Join(root, "nope")

	_, stderr, err := execute(t, "build", filepath.Join(root, "main.c"), "-I", missing)

	require.NoError(t, err)
	assert.NotContains(t, stderr, "search path: none")
	assert.Contains(t, stderr, "Warning: Search directory not found")
	assert.Contains(t, stderr, missing)
}

func TestBuildCommand_OutputLocked(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"main.c": "x\n"})
	out := filepath.Join(root, "main.in")

	held, err := filelock.TryLockOutput(out)
	require.NoError(t, err)
	defer held.Unlock()

	_, _, err = execute(t, "build", filepath.Join(root, "main.c"))
	assert.ErrorIs(t, err, filelock.ErrLocked)

	_, _, err = execute(t, "build", filepath.Join(root, "main.c"), "--no-lock")
	assert.NoError(t, err)
}

func TestBuildCommand_LockFileRemains(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"main.c": "x\n"})

	_, _, err := execute(t, "build", filepath.Join(root, "main.c"))
	require.NoError(t, err)

	_, statErr := os.Stat(filelock.LockPath(filepath.Join(root, "main.in")))
	assert.NoError(t, statErr)

	stdout, _, err := execute(t, "build", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "The lock file is left in place")
}

func TestBuildCommand_NoLockOverridesWaitForLock(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"main.c":      "x\n",
		"config.yaml": "wait_for_lock: true\n",
	})
	out := filepath.Join(root, "main.in")

	_, _, err := execute(t, "build", filepath.Join(root, "main.c"),
		"--config", filepath.Join(root, "config.yaml"), "--no-lock")

	require.NoError(t, err)
	_, statErr := os.Stat(filelock.LockPath(out))
	assert.True(t, os.IsNotExist(statErr), "no lock file without locking")
}

func TestBuildCommand_RefusesToOverwriteRoot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"main.in": "x\n"})
	rootFile := filepath.Join(root, "main.in")

	_, _, err := execute(t, "build", rootFile)
	assert.ErrorContains(t, err, "would overwrite the root file")

	data, readErr := os.ReadFile(rootFile)
	require.NoError(t, readErr)
	assert.Equal(t, "x\n", string(data))
}

func TestBuildCommand_RefusesToOverwriteIncludedFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, sourcesTree)
	header := filepath.Join(root, "dir1", "b.h")

	_, _, err := execute(t, "build", filepath.Join(root, "a.cpp"),
		"-o", header,
		"-I", filepath.Join(root, "include1"),
		"-I", filepath.Join(root, "include2"))
	assert.ErrorContains(t, err, "would overwrite included file "+header)

	data, readErr := os.ReadFile(header)
	require.NoError(t, readErr)
	assert.Equal(t, sourcesTree["dir1/b.h"], string(data))
}

func TestBuildCommand_RefusesToOverwriteRootThroughSymlink(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"src/main.c": "x\n"})
	rootFile := filepath.Join(root, "src", "main.c")
	link := filepath.Join(root, "main.in")
	require.NoError(t, os.Symlink(rootFile, link))

	_, _, err := execute(t, "build", rootFile, "-o", link)
	assert.ErrorContains(t, err, "would overwrite the root file")

	data, readErr := os.ReadFile(rootFile)
	require.NoError(t, readErr)
	assert.Equal(t, "x\n", string(data))
}

func TestBuildCommand_DetectCycles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.c": "#include \"b.h\"\n",
		"b.h": "#include \"a.c\"\n",
	})

	_, stderr, err := execute(t, "build", filepath.Join(root, "a.c"), "--detect-cycles")
	require.Error(t, err)
	assert.Contains(t, stderr, "include cycle")
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "sources/a.in", defaultOutput("sources/a.cpp"))
	assert.Equal(t, "Makefile.in", defaultOutput("Makefile"))
	assert.Equal(t, "x.tar.in", defaultOutput("x.tar.gz"))
}

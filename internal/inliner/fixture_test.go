package inliner

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/harrison/inliner/internal/logger"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files relative to root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// recordingLogger keeps every message by level.
type recordingLogger struct {
	mu     sync.Mutex
	errors []string
	debug  []string
	trace  []string
}

var _ logger.Logger = (*recordingLogger)(nil)

func (r *recordingLogger) LogTrace(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = append(r.trace, m)
}

func (r *recordingLogger) LogDebug(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debug = append(r.debug, m)
}

func (r *recordingLogger) LogError(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, m)
}

func (r *recordingLogger) LogInfo(string)               {}
func (r *recordingLogger) LogWarn(string)               {}
func (r *recordingLogger) LogSummary(logger.RunSummary) {}

// sourcesTree is the a/b/c/d/std1/std2 layout: a.cpp includes dir1/b.h and
// dir1/d.h, b.h includes subdir/c.h, c.h includes <std1.h> from include1,
// d.h includes "lib/std2.h" from include2, and a.cpp ends with an
// unresolvable <dummy.txt> inside a function body.
var sourcesTree = map[string]string{
	"a.cpp": "// this comment before include\n" +
		"#include \"dir1/b.h\"\n" +
		"// text between b.h and c.h\n" +
		"#include \"dir1/d.h\"\n" +
		"\n" +
		"int SayHello() {\n" +
		"    cout << \"hello, world!\" << endl;\n" +
		"#   include<dummy.txt>\n" +
		"}\n",
	"dir1/b.h": "// text from b.h before include\n" +
		"#include \"subdir/c.h\"\n" +
		"// text from b.h after include",
	"dir1/subdir/c.h": "// text from c.h before include\n" +
		"#include <std1.h>\n" +
		"// text from c.h after include\n",
	"dir1/d.h": "// text from d.h before include\n" +
		"#include \"lib/std2.h\"\n" +
		"// text from d.h after include\n",
	"include1/std1.h":     "// std1\n",
	"include2/lib/std2.h": "// std2\n",
}

const sourcesExpected = "// this comment before include\n" +
	"// text from b.h before include\n" +
	"// text from c.h before include\n" +
	"// std1\n" +
	"// text from c.h after include\n" +
	"// text from b.h after include\n" +
	"// text between b.h and c.h\n" +
	"// text from d.h before include\n" +
	"// std2\n" +
	"// text from d.h after include\n" +
	"\n" +
	"int SayHello() {\n" +
	"    cout << \"hello, world!\" << endl;\n"

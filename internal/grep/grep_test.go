package grep

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/remote"
	"github.com/jpl-au/vgrep/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runGrep executes one invocation against env and returns stdout, stderr
// and the exit code.
func runGrep(t *testing.T, env Env, argv ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), &stdout, &stderr, env, argv)
	return stdout.String(), stderr.String(), code
}

func localEnv(files map[string]string) Env {
	return Env{FS: vfs.NewMemFS(files)}
}

func TestRun_LocalSingleFile(t *testing.T) {
	env := localEnv(map[string]string{
		"notes.txt": "alpha\nbeta\nalpha beta\n",
	})

	t.Run("match", func(t *testing.T) {
		out, errOut, code := runGrep(t, env, "alpha", "notes.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "alpha\nalpha beta\n", out)
		assert.Empty(t, errOut)
	})

	t.Run("no match exits 1", func(t *testing.T) {
		out, errOut, code := runGrep(t, env, "gamma", "notes.txt")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Empty(t, errOut)
	})

	t.Run("line numbers", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-n", "alpha", "notes.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "1:alpha\n3:alpha beta\n", out)
	})

	t.Run("single file has no filename prefix", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "beta", "notes.txt")
		assert.NotContains(t, out, "notes.txt")
	})

	t.Run("case sensitive by default", func(t *testing.T) {
		_, _, code := runGrep(t, env, "ALPHA", "notes.txt")
		assert.Equal(t, 1, code)

		out, _, code := runGrep(t, env, "-i", "ALPHA", "notes.txt")
		assert.Equal(t, 0, code)
		assert.Contains(t, out, "alpha")
	})
}

func TestRun_MultipleFiles(t *testing.T) {
	env := localEnv(map[string]string{
		"a.txt": "one match\n",
		"b.txt": "no hit here\nanother match\n",
	})

	t.Run("filename prefixes", func(t *testing.T) {
		out, _, code := runGrep(t, env, "match", "a.txt", "b.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "a.txt:one match\nb.txt:another match\n", out)
	})

	t.Run("-h suppresses prefixes", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-h", "match", "a.txt", "b.txt")
		assert.Equal(t, "one match\nanother match\n", out)
	})

	t.Run("declaration order preserved", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "match", "b.txt", "a.txt")
		assert.Equal(t, "b.txt:another match\na.txt:one match\n", out)
	})

	t.Run("missing file degrades to partial results", func(t *testing.T) {
		out, _, code := runGrep(t, env, "match", "missing.txt", "a.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "a.txt:one match\n", out)
	})
}

func TestRun_Recursive(t *testing.T) {
	env := localEnv(map[string]string{
		"src/b/late.txt":  "needle b\n",
		"src/a/early.txt": "needle a\n",
		"src/top.txt":     "needle top\n",
		"other.txt":       "needle other\n",
	})

	t.Run("directory without -r is skipped", func(t *testing.T) {
		out, _, code := runGrep(t, env, "needle", "src")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
	})

	t.Run("depth-first sorted walk", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-r", "needle", "src")
		assert.Equal(t, 0, code)
		assert.Equal(t, "src/a/early.txt:needle a\nsrc/b/late.txt:needle b\nsrc/top.txt:needle top\n", out)
	})

	t.Run("recursive always prefixes filenames", func(t *testing.T) {
		env := localEnv(map[string]string{"d/only.txt": "needle\n"})
		out, _, _ := runGrep(t, env, "-r", "needle", "d")
		assert.Equal(t, "d/only.txt:needle\n", out)
	})

	t.Run("unreadable file skipped mid-walk", func(t *testing.T) {
		fs := vfs.NewMemFS(map[string]string{
			"d/a.txt": "needle a\n",
			"d/b.txt": "needle b\n",
		})
		fs.MarkUnreadable("d/a.txt")
		out, errOut, code := runGrep(t, Env{FS: fs}, "-r", "needle", "d")
		assert.Equal(t, 0, code)
		assert.Equal(t, "d/b.txt:needle b\n", out)
		assert.Empty(t, errOut)
	})
}

func TestRun_OutputModes(t *testing.T) {
	env := localEnv(map[string]string{
		"a.txt": "x\nx\ny\n",
		"b.txt": "y\n",
	})

	t.Run("count single file", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-c", "x", "a.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "2\n", out)
	})

	t.Run("count zero", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-c", "z", "a.txt")
		assert.Equal(t, 1, code)
		assert.Equal(t, "0\n", out)
	})

	t.Run("count multiple files", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-c", "y", "a.txt", "b.txt")
		assert.Equal(t, "a.txt:1\nb.txt:1\n", out)
	})

	t.Run("files with matches", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-l", "y", "a.txt", "b.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "a.txt\nb.txt\n", out)
	})

	t.Run("files with matches names each file once", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-l", "x", "a.txt")
		assert.Equal(t, "a.txt\n", out)
	})

	t.Run("files without match is exit code only", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-L", "x", "a.txt")
		assert.Empty(t, out)
		assert.Equal(t, 1, code)

		out, _, code = runGrep(t, env, "-L", "z", "a.txt")
		assert.Empty(t, out)
		assert.Equal(t, 0, code)
	})

	t.Run("quiet", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-q", "x", "a.txt")
		assert.Empty(t, out)
		assert.Equal(t, 0, code)

		out, _, code = runGrep(t, env, "-q", "z", "a.txt")
		assert.Empty(t, out)
		assert.Equal(t, 1, code)
	})

	t.Run("quiet beats count", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-q", "-c", "x", "a.txt")
		assert.Empty(t, out)
		assert.Equal(t, 0, code)
	})
}

func TestRun_InvertAndOnlyMatching(t *testing.T) {
	env := localEnv(map[string]string{
		"f.txt": "keep this\ndrop match\nkeep too\n",
	})

	t.Run("invert", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-v", "match", "f.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "keep this\nkeep too\n", out)
	})

	t.Run("only matching prints each hit", func(t *testing.T) {
		env := localEnv(map[string]string{"f.txt": "ab ab cd\n"})
		out, _, _ := runGrep(t, env, "-o", "ab", "f.txt")
		assert.Equal(t, "ab\nab\n", out)
	})

	t.Run("invert with only matching yields nothing", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-v", "-o", "match", "f.txt")
		assert.Empty(t, out)
		assert.Equal(t, 1, code)
	})
}

func TestRun_MaxCount(t *testing.T) {
	env := localEnv(map[string]string{
		"a.txt": "x1\nx2\nx3\n",
		"b.txt": "x4\nx5\n",
	})

	t.Run("per file limit", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-m", "2", "x", "a.txt", "b.txt")
		assert.Equal(t, "a.txt:x1\na.txt:x2\nb.txt:x4\nb.txt:x5\n", out)
	})

	t.Run("inline value", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-m1", "x", "a.txt")
		assert.Equal(t, "x1\n", out)
	})

	t.Run("limit applies to count mode", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-c", "-m", "2", "x", "a.txt")
		assert.Equal(t, "2\n", out)
	})
}

func TestRun_Stdin(t *testing.T) {
	t.Run("no files reads stdin", func(t *testing.T) {
		env := Env{FS: vfs.NewMemFS(nil), Stdin: strings.NewReader("hit\nmiss\n")}
		out, _, code := runGrep(t, env, "hit")
		assert.Equal(t, 0, code)
		assert.Equal(t, "hit\n", out)
	})

	t.Run("stdin with -l uses standard input label", func(t *testing.T) {
		env := Env{FS: vfs.NewMemFS(nil), Stdin: strings.NewReader("hit\n")}
		out, _, _ := runGrep(t, env, "-l", "hit")
		assert.Equal(t, "(standard input)\n", out)
	})

	t.Run("no files and no stdin is a usage error", func(t *testing.T) {
		env := Env{FS: vfs.NewMemFS(nil)}
		out, errOut, code := runGrep(t, env, "hit")
		assert.Equal(t, 2, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "usage:")
	})
}

func TestRun_Errors(t *testing.T) {
	env := localEnv(map[string]string{"f.txt": "x\n"})

	t.Run("invalid pattern", func(t *testing.T) {
		out, errOut, code := runGrep(t, env, "[unclosed", "f.txt")
		assert.Equal(t, 2, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "invalid pattern")
		assert.Contains(t, errOut, "[unclosed")
	})

	t.Run("missing pattern", func(t *testing.T) {
		_, errOut, code := runGrep(t, env, "-n")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "usage:")
	})

	t.Run("unknown flag before pattern", func(t *testing.T) {
		_, errOut, code := runGrep(t, env, "-Z", "x", "f.txt")
		assert.Equal(t, 2, code)
		assert.Contains(t, errOut, "usage:")
	})
}

// mountedEnv builds an Env with a filesystem and one mount at docs/.
func mountedEnv(t *testing.T, files map[string]string, backend *fakeBackend) Env {
	t.Helper()
	table, err := mount.NewTable(&mount.Point{Prefix: "docs", Backend: backend})
	require.NoError(t, err)
	return Env{FS: vfs.NewMemFS(files), Mounts: table}
}

func TestRun_RemoteDelegation(t *testing.T) {
	t.Run("mounted subtree delegates to substrate grep", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{
			"docs/api":           "auth via TODO token\n",
			"docs/notes/meeting": "TODO follow up\nnothing here\n",
		})
		env := mountedEnv(t, nil, backend)

		out, _, code := runGrep(t, env, "-r", "TODO", "docs")
		assert.Equal(t, 0, code)
		assert.Equal(t, "docs/api:auth via TODO token\ndocs/notes/meeting:TODO follow up\n", out)
		assert.Equal(t, []string{"TODO"}, backend.grepCalls)
	})

	t.Run("single mounted document delegates without -r", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "one TODO\n"})
		env := mountedEnv(t, nil, backend)

		out, _, code := runGrep(t, env, "TODO", "docs/api")
		assert.Equal(t, 0, code)
		assert.Equal(t, "one TODO\n", out)
		assert.Len(t, backend.grepCalls, 1)
	})

	t.Run("mounted subtree without -r is skipped", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "TODO\n"})
		env := mountedEnv(t, nil, backend)

		out, _, code := runGrep(t, env, "TODO", "docs")
		assert.Equal(t, 1, code)
		assert.Empty(t, out)
		assert.Empty(t, backend.grepCalls)
	})

	t.Run("remote pattern never carries case flag", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "Error here\n"})
		env := mountedEnv(t, nil, backend)

		runGrep(t, env, "-r", "-i", "error", "docs")
		require.Len(t, backend.grepCalls, 1)
		assert.NotContains(t, backend.grepCalls[0], "(?i)")
	})
}

func TestRun_RemoteRevalidation(t *testing.T) {
	backend := newFakeBackend(map[string]string{"docs/api": "real TODO\n"})
	backend.extraHits = append(backend.extraHits,
		remote.Match{Path: "docs/api", Line: 9, Text: "no hit text"},     // fails re-validation
		remote.Match{Path: "elsewhere/doc", Line: 1, Text: "TODO stray"}, // outside the mount's native root
	)
	env := mountedEnv(t, nil, backend)

	out, _, code := runGrep(t, env, "-r", "TODO", "docs")
	assert.Equal(t, 0, code)
	assert.Equal(t, "docs/api:real TODO\n", out)
}

func TestRun_MixedTargets(t *testing.T) {
	backend := newFakeBackend(map[string]string{"docs/api": "remote match\n"})
	files := map[string]string{"local.txt": "local match\n"}
	env := mountedEnv(t, files, backend)

	t.Run("remote and local merge in declaration order", func(t *testing.T) {
		out, _, code := runGrep(t, env, "match", "docs/api", "local.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "docs/api:remote match\nlocal.txt:local match\n", out)
	})

	t.Run("backend failure on sole target is fatal", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "match\n"})
		backend.grepErr = errors.New("substrate exploded")
		env := mountedEnv(t, nil, backend)

		out, errOut, code := runGrep(t, env, "match", "docs/api")
		assert.Equal(t, 2, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "substrate exploded")
	})

	t.Run("backend failure among several targets degrades", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "match\n"})
		backend.grepErr = errors.New("substrate exploded")
		env := mountedEnv(t, files, backend)

		out, errOut, code := runGrep(t, env, "match", "docs/api", "local.txt")
		assert.Equal(t, 0, code)
		assert.Equal(t, "local.txt:local match\n", out)
		assert.Empty(t, errOut)
	})
}

func TestRun_CapabilityGate(t *testing.T) {
	backend := newFakeBackend(map[string]string{
		"docs/api":   "keep\ndrop match\n",
		"docs/other": "keep too\n",
	})
	env := mountedEnv(t, nil, backend)

	t.Run("invert forces local scan over substrate primitives", func(t *testing.T) {
		out, _, code := runGrep(t, env, "-r", "-v", "match", "docs")
		assert.Equal(t, 0, code)
		assert.Equal(t, "docs/api:keep\ndocs/other:keep too\n", out)
		assert.Empty(t, backend.grepCalls)
		assert.NotEmpty(t, backend.readCalls)
		assert.NotEmpty(t, backend.listCalls)
	})

	t.Run("only-matching forces local scan", func(t *testing.T) {
		backend := newFakeBackend(map[string]string{"docs/api": "ab ab\n"})
		env := mountedEnv(t, nil, backend)

		out, _, _ := runGrep(t, env, "-o", "ab", "docs/api")
		assert.Equal(t, "ab\nab\n", out)
		assert.Empty(t, backend.grepCalls)
	})
}

func TestRun_WordAndFixed(t *testing.T) {
	env := localEnv(map[string]string{
		"f.txt": "cat\nconcatenate\na.b\naxb\n",
	})

	t.Run("word regexp", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-w", "cat", "f.txt")
		assert.Equal(t, "cat\n", out)
	})

	t.Run("fixed strings", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "-F", "a.b", "f.txt")
		assert.Equal(t, "a.b\n", out)
	})

	t.Run("unescaped metacharacter matches broadly", func(t *testing.T) {
		out, _, _ := runGrep(t, env, "a.b", "f.txt")
		assert.Equal(t, "a.b\naxb\n", out)
	})
}

func TestRun_MultiplePatterns(t *testing.T) {
	env := localEnv(map[string]string{
		"f.txt": "alpha\nbeta\ngamma\n",
	})

	out, _, code := runGrep(t, env, "-e", "alpha", "-e", "gamma", "f.txt")
	assert.Equal(t, 0, code)
	assert.Equal(t, "alpha\ngamma\n", out)
}

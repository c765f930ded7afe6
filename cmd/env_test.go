// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> mount table -> search pipeline -> SQLite.
// The search semantics themselves are unit-tested in internal/grep and
// internal/rgrep against in-memory substrates; these tests prove the
// same behaviour holds through a real binary, a real config file and a
// real store database.

package cmd

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the vgrep binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "vgrep-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "vgrep"
		if os.PathSeparator == '\\' {
			binaryName = "vgrep.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary workspace with an initialised docs
// mount, mirroring what "vgrep init" gives a fresh project.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{t: t, dir: dir, binary: binary}
	env.run("init")
	return env
}

// run executes vgrep with the given args and returns combined output,
// failing the test on a non-zero exit.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, code := e.runCode(args...)
	if code != 0 {
		e.t.Fatalf("vgrep %v exited %d\noutput: %s", args, code, out)
	}
	return out
}

// runCode executes vgrep and returns combined output and the exit code.
func (e *testEnv) runCode(args ...string) (string, int) {
	e.t.Helper()
	return e.runStdinCode("", args...)
}

// runStdin executes vgrep with stdin input, failing on non-zero exit.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, code := e.runStdinCode(input, args...)
	if code != 0 {
		e.t.Fatalf("vgrep %v exited %d\noutput: %s", args, code, out)
	}
	return out
}

// runStdinCode executes vgrep with stdin input and returns combined
// output and the exit code.
func (e *testEnv) runStdinCode(input string, args ...string) (string, int) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			e.t.Fatalf("vgrep %v: %v", args, err)
		}
		return string(out), ee.ExitCode()
	}
	return string(out), 0
}

// writeFile drops a plain file into the test workspace.
func (e *testEnv) writeFile(rel, content string) {
	e.t.Helper()
	full := filepath.Join(e.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// The cmd/ package holds CLI integration tests that exercise the full stack:
// command parsing -> extension -> service -> store -> SQLite. They build the
// docq binary once and run it in a temporary project with its own HOME, so
// the audit log and global config never touch the developer's.

package cmd

import (
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

// buildBinary compiles the docq binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "docq-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "docq"
		if os.PathSeparator == '\\' {
			binaryName = "docq.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

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
	home   string
	binary string
	env    []string
}

// newBareEnv creates an empty project directory without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   home,
		binary: buildBinary(t),
		env:    append(os.Environ(), "HOME="+home, "USERPROFILE="+home, "DOCQ_DB=", "DOCQ_DIR="),
	}
}

// newTestEnv creates a project with an initialised repository and a local
// author, so write commands work straight away.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := newBareEnv(t)
	e.run("init")
	e.run("config", "author.name", "tester", "--local")
	return e
}

// run executes docq with the given args and returns its output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("docq %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes docq and returns its output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	return e.exec("", args...)
}

// runStdin executes docq with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	out, err := e.exec(input, args...)
	if err != nil {
		e.t.Fatalf("docq %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runStdinErr executes docq with stdin input and returns any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, error) {
	e.t.Helper()
	return e.exec(input, args...)
}

func (e *testEnv) exec(input string, args ...string) (string, error) {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = e.env
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// write creates a file in the project directory.
func (e *testEnv) write(name, content string) string {
	e.t.Helper()
	p := filepath.Join(e.dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		e.t.Fatal(err)
	}
	return p
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

// testBooks is a small library used by the query tests, one object per line.
const testBooks = `{"_id": "dune", "title": "Dune", "author": "Frank Herbert", "year": 1965, "tags": ["scifi", "classic"]}
{"_id": "emma", "title": "Emma", "author": "Jane Austen", "year": 1815, "tags": ["classic"]}
{"_id": "neuromancer", "title": "Neuromancer", "author": "William Gibson", "year": 1984, "tags": ["scifi", "cyberpunk"]}
{"_id": "ulysses", "title": "Ulysses", "author": "James Joyce", "year": 1922}
{"_id": "hyperion", "title": "Hyperion", "author": "Dan Simmons", "year": 1989, "tags": ["scifi"]}
`

// seedBooks imports testBooks into the repository.
func (e *testEnv) seedBooks() {
	e.t.Helper()
	e.run("import", e.write("books.jsonl", testBooks))
}

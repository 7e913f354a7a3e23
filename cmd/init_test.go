package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("basic init", func(t *testing.T) {
		env := newBareEnv(t)
		out := env.run("init")

		env.contains(out, "Initialised docq repository")
		assert.FileExists(t, filepath.Join(env.dir, ".docq", "docq.db"))
		// init leaves configuration to "docq config"
		assert.NoFileExists(t, filepath.Join(env.dir, ".docq", "config.yaml"))
	})

	t.Run("already initialised", func(t *testing.T) {
		env := newBareEnv(t)
		env.run("init")
		_, err := env.runErr("init")
		assert.Error(t, err)
	})

	t.Run("force", func(t *testing.T) {
		env := newTestEnv(t)
		env.runStdin(`{"a": 1}`, "put", "x")

		env.run("init", "--force")
		out := env.run("ls", "--count")
		env.equals(out, "0")
	})
}

func TestInit_Dir(t *testing.T) {
	env := newBareEnv(t)
	target := t.TempDir()

	env.run("init", "--dir", target)
	assert.FileExists(t, filepath.Join(target, ".docq", "docq.db"))
	assert.NoFileExists(t, filepath.Join(env.dir, ".docq", "docq.db"))

	out, err := env.runErr("init", "--dir", target, "--local")
	assert.Error(t, err)
	env.contains(out, "cannot use --local with --dir")
}

func TestInit_DB(t *testing.T) {
	t.Run("named databases coexist", func(t *testing.T) {
		env := newTestEnv(t)
		out := env.run("init", "--db", "books")
		env.contains(out, "docq-books.db")

		env.runStdin(`{"title": "Dune"}`, "put", "dune", "--db", "books")
		env.runStdin(`{"title": "Notes"}`, "put", "notes")

		env.equals(env.run("ls", "--db", "books"), "dune")
		env.equals(env.run("ls"), "notes")
	})

	t.Run("DOCQ_DB env var", func(t *testing.T) {
		env := newBareEnv(t)
		env.env = append(env.env, "DOCQ_DB=env-test")
		env.run("init")
		assert.FileExists(t, filepath.Join(env.dir, ".docq", "docq-env-test.db"))
	})

	t.Run("flag overrides env var", func(t *testing.T) {
		env := newBareEnv(t)
		env.env = append(env.env, "DOCQ_DB=env-value")
		env.run("init", "--db", "flag-value")
		assert.FileExists(t, filepath.Join(env.dir, ".docq", "docq-flag-value.db"))
		assert.NoFileExists(t, filepath.Join(env.dir, ".docq", "docq-env-value.db"))
	})
}

func TestDB(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")
	env.run("init", "--db", "scratch", "--local")

	out := env.run("db")
	env.contains(out, "docq.db  shared")
	env.contains(out, "docq-scratch.db  local")

	gitignore, err := os.ReadFile(filepath.Join(env.dir, ".docq", ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "docq-scratch.db")

	env.equals(env.run("db", "scratch", "--share"), "docq-scratch.db: shared")
	env.equals(env.run("db", "scratch"), "docq-scratch.db: shared")
}

func TestNotInitialised(t *testing.T) {
	env := newBareEnv(t)
	out, err := env.runErr("ls")
	assert.Error(t, err)
	env.contains(out, "docq init")
}

func TestAuthorRequired(t *testing.T) {
	env := newBareEnv(t)
	env.run("init")

	out, err := env.runStdinErr(`{"a": 1}`, "put", "x")
	assert.Error(t, err)
	env.contains(out, "author not configured")

	env.runStdin(`{"a": 1}`, "put", "x", "--author", "cli")
}

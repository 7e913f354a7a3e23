package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "docq.db", DBFileName(""))
	assert.Equal(t, "docq-books.db", DBFileName("books"))
	assert.Equal(t, "custom.db", DBFileName("custom.db"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))
	assert.FileExists(t, filepath.Join(dir, Dir, DBFile))
	assert.FileExists(t, filepath.Join(dir, Dir, ".gitignore"))

	err := Init(false, "", false, dir)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, Init(true, "", false, dir))

	p, err := At(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, DBFile), p)

	p, err = At(filepath.Join(dir, Dir), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Dir, DBFile), p)

	_, err = At(dir, "missing")
	assert.ErrorIs(t, err, ErrNotInitialised)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	t.Chdir(sub)

	p, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, DBFile, filepath.Base(p))

	d, err := DiscoverDir()
	require.NoError(t, err)
	assert.Equal(t, Dir, filepath.Base(d))

	_, err = Discover("other")
	assert.ErrorIs(t, err, ErrNotInitialised)
}

func TestLocalDatabases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))
	require.NoError(t, Init(false, "scratch", true, dir))
	docq := filepath.Join(dir, Dir)

	dbs, err := ListDBs(docq)
	require.NoError(t, err)
	require.Len(t, dbs, 2)
	assert.Equal(t, "", dbs[0].Name)
	assert.False(t, dbs[0].Local)
	assert.Equal(t, "scratch", dbs[1].Name)
	assert.True(t, dbs[1].Local)

	require.NoError(t, IgnoreDB("scratch", docq), "ignoring twice is a no-op")
	data, err := os.ReadFile(filepath.Join(docq, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), localDBHeader)

	require.NoError(t, UnignoreDB("scratch", docq))
	ignored, err := IsIgnored("scratch", docq)
	require.NoError(t, err)
	assert.False(t, ignored)

	data, err = os.ReadFile(filepath.Join(docq, ".gitignore"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), localDBHeader)
	assert.Contains(t, string(data), "config.yaml")
}

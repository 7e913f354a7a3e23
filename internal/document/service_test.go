package document_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/service"
	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/internal/validate"
	"github.com/jpl-au/docq/query"
)

// setupService creates a repository in a temp directory, isolated from the
// user's global config.
func setupService(t *testing.T, configYAML string) service.Service {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, document.Init(false, "", false, ""))
	if configYAML != "" {
		require.NoError(t, os.WriteFile(config.LocalPath(), []byte(configYAML), 0644))
	}

	svc, err := document.New("", "")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestService_PutQuery(t *testing.T) {
	svc := setupService(t, "")
	ctx := context.Background()

	for _, b := range []query.Document{
		{"_id": "r1", "title": "Report one", "pages": 12},
		{"_id": "r2", "title": "Report two", "pages": 3},
		{"_id": "m1", "title": "Memo", "pages": 1},
	} {
		_, err := svc.Put(ctx, "", b, false)
		require.NoError(t, err)
	}

	rows, err := svc.Query(ctx, `title: "Report%" AND pages: > 5`, query.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0].ID)

	rows, err = svc.Query(ctx, map[string]any{"type": "simple", "key": "title", "value": "Memo"}, query.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "m1", rows[0].ID)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, svc.Delete(ctx, "m1"))
	_, err = svc.Get(ctx, "m1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, ".docq", filepath.Base(svc.Dir()))
}

func TestService_Limits(t *testing.T) {
	svc := setupService(t, "query:\n  max_length: 8\nlimits:\n  max_id: 4\n")
	ctx := context.Background()

	_, err := svc.Put(ctx, "toolong", query.Document{}, false)
	assert.ErrorIs(t, err, validate.ErrIDTooLong)

	_, err = svc.Query(ctx, `title: "a long query"`, query.Options{})
	assert.ErrorIs(t, err, validate.ErrQueryTooLong)

	_, err = svc.Parse(`a:(`)
	assert.ErrorIs(t, err, query.ErrParse)
}

func TestService_KeySchema(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, document.Init(false, "", false, ""))
	require.NoError(t, os.WriteFile("keys.yaml", []byte(`
key_set:
  day:
    read_from: published
    cast_to: date
    equal_match: sameDay
`), 0644))
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("query:\n  schema: keys.yaml\n"), 0644))

	svc, err := document.New("", "")
	require.NoError(t, err)
	defer svc.Close()
	ctx := context.Background()

	for id, date := range map[string]string{"a": "2013-02-02T08:00:00Z", "b": "2013-02-03", "c": "2013-02-02 23:59"} {
		_, err := svc.Put(ctx, id, query.Document{"published": date}, false)
		require.NoError(t, err)
	}

	rows, err := svc.Query(ctx, `day: "2013-02-02"`, query.Options{
		SortOn: []query.SortKey{{Field: "day", Direction: query.Descending}},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"c", "a"}, []string{rows[0].ID, rows[1].ID})
	assert.Contains(t, svc.Schema().KeySet, "day")
}

func TestService_BadSchema(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, document.Init(false, "", false, ""))
	require.NoError(t, os.WriteFile("keys.yaml", []byte("key_set:\n  a:\n    read_from: x\n    cast_to: roman\n"), 0644))
	require.NoError(t, os.WriteFile(config.LocalPath(), []byte("query:\n  schema: keys.yaml\n"), 0644))

	_, err := document.New("", "")
	assert.ErrorContains(t, err, "roman")
}

func TestNewMemory(t *testing.T) {
	svc, err := document.NewMemory(&config.Config{})
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Put(context.Background(), "x", query.Document{"k": "v"}, true)
	require.NoError(t, err)
	rows, err := svc.Query(context.Background(), "v", query.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, svc.Dir())
}

func TestNew_NotInitialised(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	_, err := document.New("", "")
	assert.Error(t, err)
}

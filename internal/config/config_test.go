package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultBatchSize, c.BatchSize())
	assert.Equal(t, DefaultMaxLength, c.MaxQueryLength())
	assert.Equal(t, DefaultMaxID, c.MaxID())
	assert.Equal(t, int64(DefaultMaxBody), c.MaxBody())
	assert.GreaterOrEqual(t, c.Workers(), 1)
	assert.Empty(t, c.SchemaPath())
	assert.False(t, c.IsSet("query.workers"))
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"author.name", "Ada"},
		{"query.workers", "8"},
		{"query.batch_size", "64"},
		{"query.max_length", "2048"},
		{"query.schema", "keys.yaml"},
		{"limits.max_id", "128"},
		{"limits.max_body", "4096"},
	}
	var c Config
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, c.Set(tt.key, tt.value))
			got, err := c.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.True(t, c.IsSet(tt.key))
		})
	}
	assert.Len(t, c.All(), len(ValidKeys()))
}

func TestSet_Invalid(t *testing.T) {
	var c Config
	assert.ErrorIs(t, c.Set("query.workers", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("query.workers", "many"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_body", "-1"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("nope", "1"), ErrUnknownKey)
	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, IsValidKey("nope"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	c, err := LoadFile(path, ScopeGlobal)
	require.NoError(t, err, "missing file yields defaults")
	require.NoError(t, c.Set("query.workers", "3"))
	require.NoError(t, c.Set("query.schema", "schema.yaml"))
	require.NoError(t, c.Save())

	c, err = LoadFile(path, ScopeGlobal)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Workers())
	assert.Equal(t, filepath.Join(dir, "schema.yaml"), c.SchemaPath())

	require.NoError(t, os.WriteFile(path, []byte("query:\n  workers: 0\n"), 0644))
	_, err = LoadFile(path, ScopeGlobal)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, os.WriteFile(path, []byte("query: [\n"), 0644))
	_, err = LoadFile(path, ScopeGlobal)
	assert.ErrorContains(t, err, "malformed config file")
}

func TestSchemaPath_LocalScope(t *testing.T) {
	c := &Config{Query: Query{Schema: "keys.yaml"}, path: filepath.Join("repo", ".docq", "config.yaml"), scope: ScopeLocal}
	assert.Equal(t, filepath.Join("repo", "keys.yaml"), c.SchemaPath())

	c.Query.Schema = "/abs/keys.yaml"
	assert.Equal(t, "/abs/keys.yaml", c.SchemaPath())
}

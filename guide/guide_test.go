package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	main, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, main, "# docq")

	q, err := Get("query")
	require.NoError(t, err)
	assert.Contains(t, q, "# Query language")

	_, err = Get("nope")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Subset(t, names, []string{"query", "keyschema", "config", "shell", "serve"})
	assert.NotContains(t, names, "guide")
}

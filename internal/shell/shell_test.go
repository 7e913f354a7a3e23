package shell_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/shell"
	"github.com/jpl-au/docq/query"
)

func setup(t *testing.T) (*shell.Session, *bytes.Buffer) {
	t.Helper()
	svc, err := document.NewMemory(&config.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	ctx := context.Background()
	for id, body := range map[string]query.Document{
		"a": {"title": "Alpha", "year": 2019.0},
		"b": {"title": "Beta", "year": 2021.0},
		"c": {"title": "Gamma", "year": 2020.0},
	} {
		_, err := svc.Put(ctx, id, body, true)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	return shell.New(svc, &out, "tester"), &out
}

func exec(t *testing.T, s *shell.Session, line string) {
	t.Helper()
	quit, err := s.Execute(context.Background(), line)
	require.NoError(t, err)
	require.False(t, quit)
}

func TestSession_Query(t *testing.T) {
	s, out := setup(t)

	exec(t, s, `year: >= 2020`)
	assert.Contains(t, out.String(), "b\t")
	assert.Contains(t, out.String(), "c\t")
	assert.NotContains(t, out.String(), "a\t")

	out.Reset()
	exec(t, s, `{"type": "simple", "key": "title", "value": "Alpha"}`)
	assert.Equal(t, "a\t{\"title\":\"Alpha\",\"year\":2019}\n", out.String())
}

func TestSession_Options(t *testing.T) {
	s, out := setup(t)

	exec(t, s, ".sort year:desc")
	exec(t, s, ".select title")
	exec(t, s, ".limit 2")
	assert.Equal(t, query.Options{
		SelectList: []string{"title"},
		SortOn:     []query.SortKey{{Field: "year", Direction: query.Descending}},
		Limit:      []int{2},
	}, s.Options())

	exec(t, s, "")
	exec(t, s, `year: > 0`)
	assert.Equal(t, "b\t{\"title\":\"Beta\"}\nc\t{\"title\":\"Gamma\"}\n", out.String())

	exec(t, s, ".skip 1")
	assert.Equal(t, []int{1, 2}, s.Options().Limit)

	out.Reset()
	exec(t, s, ".show")
	assert.Contains(t, out.String(), "sort:   year:descending")
	assert.Contains(t, out.String(), "limit:  2")

	exec(t, s, ".reset")
	assert.Equal(t, query.Options{}, s.Options())
}

func TestSession_Errors(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	_, err := s.Execute(ctx, ".frobnicate")
	assert.ErrorIs(t, err, shell.ErrUnknownCommand)

	_, err = s.Execute(ctx, ".limit -3")
	assert.Error(t, err)

	_, err = s.Execute(ctx, `(title: x`)
	assert.ErrorIs(t, err, query.ErrParse)

	quit, err := s.Execute(ctx, ".quit")
	require.NoError(t, err)
	assert.True(t, quit, "the session survives errors")
}

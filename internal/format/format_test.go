package format

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

var rows = []store.Row{
	{ID: "a", Value: query.Document{"title": "Alpha", "tags": []any{"x", "y"}}},
	{ID: "b", Value: query.Document{"title": "B|eta", "year": 2021.0}},
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{1 << 20, "1.0M"},
		{3 << 30, "3.0G"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.in))
	}
}

func TestLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Lines(&buf, rows))
	assert.Equal(t, "a\t{\"tags\":[\"x\",\"y\"],\"title\":\"Alpha\"}\nb\t{\"title\":\"B|eta\",\"year\":2021}\n", buf.String())
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"tags", "title", "year"}, Columns(rows, nil))
	assert.Equal(t, []string{"year"}, Columns(rows, []string{"year"}))
}

func TestTable(t *testing.T) {
	got := Table(rows, []string{"title", "tags", "year"})
	want := "| _id | title | tags | year |\n" +
		"|---|---|---|---|\n" +
		"| a | Alpha | [\"x\",\"y\"] |  |\n" +
		"| b | B\\|eta |  | 2021 |\n" +
		"\n2 row(s)\n"
	assert.Equal(t, want, got)
}

func TestCell_Truncates(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 100)
	got := cell(string(long))
	assert.Len(t, got, maxCell)
	assert.Equal(t, "a b", cell("a\nb"))
}

func TestRows_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Rows(&buf, rows[:1], nil))
	assert.Equal(t, "a\t{\"tags\":[\"x\",\"y\"],\"title\":\"Alpha\"}\n", buf.String())
}

func TestMarkdown_NotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, "# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestListLong(t *testing.T) {
	metas := []store.Meta{
		{ID: "notes/1", Size: 2048, UpdatedAt: "2026-01-02T03:04:05Z"},
		{ID: "todo", Size: 12, UpdatedAt: "2026-01-03T00:00:00Z"},
	}
	var buf bytes.Buffer
	require.NoError(t, List(&buf, metas))
	assert.Equal(t, "notes/1\ntodo\n", buf.String())

	buf.Reset()
	require.NoError(t, Long(&buf, metas))
	assert.Contains(t, buf.String(), "SIZE")
	assert.Contains(t, buf.String(), "  2.0K  2026-01-02T03:04:05Z  notes/1\n")

	buf.Reset()
	require.NoError(t, Long(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestLog(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	var buf bytes.Buffer
	require.NoError(t, Log(&buf, []log.Record{
		{Time: at, Source: "query:query", Action: "query", Author: "ada", Query: `a: "b"`, Rows: 2, Success: true},
		{Time: at, Source: "document:get", Action: "read", Doc: "x", Error: errors.New("not found").Error()},
	}))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), `ok    query:query       query     ada           a: "b"  (2)`)
	assert.Contains(t, string(lines[1]), "FAIL")
	assert.Contains(t, string(lines[1]), "not found")
}

package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/query"
)

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, r *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content)
	tc, ok := r.Content[0].(mcp.TextContent)
	require.True(t, ok, "want text content, got %T", r.Content[0])
	return tc.Text
}

func TestParseDocumentURI(t *testing.T) {
	id, err := parseDocumentURI("docq://documents/notes/a%20b")
	require.NoError(t, err)
	assert.Equal(t, "notes/a b", id)

	_, err = parseDocumentURI("file://documents/x")
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = parseDocumentURI("docq://documents/")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestQueryOptions(t *testing.T) {
	opts, err := QueryOptions(request(map[string]any{
		"select": []any{"title", "year"},
		"sort":   []any{"year:desc", "title"},
		"limit":  []any{2.0, 5.0},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "year"}, opts.SelectList)
	assert.Equal(t, []query.SortKey{{Field: "year", Direction: query.Descending}, {Field: "title"}}, opts.SortOn)
	assert.Equal(t, []int{2, 5}, opts.Limit)

	_, err = QueryOptions(request(map[string]any{"limit": []any{1.0, 2.0, 3.0}}))
	assert.ErrorIs(t, err, query.ErrConfig)

	opts, err = QueryOptions(request(nil))
	require.NoError(t, err)
	assert.Empty(t, opts.SortOn)
}

func TestSpec(t *testing.T) {
	s, err := Spec(request(map[string]any{"query": `a: b`}))
	require.NoError(t, err)
	assert.Equal(t, `a: b`, s)

	obj := map[string]any{"type": "simple", "key": "a", "value": "b"}
	s, err = Spec(request(map[string]any{"query": obj}))
	require.NoError(t, err)
	assert.Equal(t, obj, s)

	s, err = Spec(request(nil))
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = Spec(request(map[string]any{"query": 3.0}))
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	var got extension.Context
	tool := extension.MCPTool{
		Tool: mcp.NewTool("test_tool"),
		Handler: func(_ context.Context, c extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			got = c
			return mcp.NewToolResultText("ok"), nil
		},
	}

	h := &handlers{}
	r, err := h.wrap(tool)(context.Background(), request(nil))
	require.NoError(t, err)
	assert.True(t, r.IsError)
	assert.Equal(t, ErrNotInitialised, resultText(t, r))
	assert.Nil(t, got, "handler not called without a repository")

	svc, err := document.NewMemory(&config.Config{})
	require.NoError(t, err)
	h.svc, h.cfg = svc, svc.Config()
	defer h.close()

	r, err = h.wrap(tool)(context.Background(), request(nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", resultText(t, r))
	require.NotNil(t, got)
	assert.Same(t, svc, got.Service())
}

func TestGetGuide(t *testing.T) {
	h := &handlers{}
	r, err := h.getGuide(context.Background(), request(map[string]any{"topic": "query"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "# ")

	r, err = h.getGuide(context.Background(), request(map[string]any{"topic": "no-such-topic"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, r), "available_topics")
}

func TestJSONResult(t *testing.T) {
	r, err := JSONResult(map[string]int{"n": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"n": 1}`, resultText(t, r))

	r, err = JSONResult(func() {})
	require.NoError(t, err)
	assert.True(t, r.IsError)
}

func TestAuthor(t *testing.T) {
	assert.Equal(t, "mcp", Author(request(nil)))
	assert.Equal(t, "bot", Author(request(map[string]any{"author": "bot"})))
}

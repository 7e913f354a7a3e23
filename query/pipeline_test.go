package query_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/query"
)

func TestExec_EmptyQueryReturnsAll(t *testing.T) {
	docs := []query.Document{{"a": "3"}, {"a": "1"}, {"b": "2"}}
	q, err := query.Create("", nil)
	require.NoError(t, err)

	got, err := query.Exec(context.Background(), q, docs, query.Options{})
	require.NoError(t, err)
	assert.Equal(t, docs, got)
}

func TestSort_StableWithTies(t *testing.T) {
	docs := []query.Document{
		{"k": "b", "t": "e"},
		{"k": "a", "t": "f"},
		{"k": "b", "t": "d"},
	}
	got, err := query.Sort(docs, []query.SortKey{
		{Field: "k", Direction: query.Ascending},
		{Field: "t", Direction: query.Descending},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []query.Document{
		{"k": "a", "t": "f"},
		{"k": "b", "t": "e"},
		{"k": "b", "t": "d"},
	}, got)

	// Equal keys keep input order.
	got, err = query.Sort(docs, []query.SortKey{{Field: "k"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "e", got[1]["t"])
	assert.Equal(t, "d", got[2]["t"])
}

func TestSort_Values(t *testing.T) {
	tests := []struct {
		name string
		docs []query.Document
		dir  query.Direction
		want []string
	}{
		{
			name: "numbers numerically",
			docs: []query.Document{{"id": "a", "v": 10.0}, {"id": "b", "v": 9.0}, {"id": "c", "v": 100.0}},
			want: []string{"b", "a", "c"},
		},
		{
			name: "strings lexically",
			docs: []query.Document{{"id": "a", "v": "10"}, {"id": "b", "v": "9"}, {"id": "c", "v": "100"}},
			want: []string{"a", "c", "b"},
		},
		{
			name: "missing last ascending",
			docs: []query.Document{{"id": "a"}, {"id": "b", "v": "x"}, {"id": "c", "v": "a"}},
			want: []string{"c", "b", "a"},
		},
		{
			name: "missing first descending",
			docs: []query.Document{{"id": "a", "v": "x"}, {"id": "b"}, {"id": "c", "v": "y"}},
			dir:  query.Descending,
			want: []string{"b", "c", "a"},
		},
		{
			name: "arrays element by element, prefix first",
			docs: []query.Document{
				{"id": "a", "v": []any{"x", "b"}},
				{"id": "b", "v": []any{"x"}},
				{"id": "c", "v": []any{"x", "a"}},
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "numbers before strings",
			docs: []query.Document{{"id": "a", "v": "1a"}, {"id": "b", "v": 10.0}, {"id": "c", "v": "9"}, {"id": "d", "v": 2.0}},
			want: []string{"d", "b", "a", "c"},
		},
		{
			name: "rich values unwrap",
			docs: []query.Document{
				{"id": "a", "v": map[string]any{"content": "z"}},
				{"id": "b", "v": "m"},
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.Sort(tt.docs, []query.SortKey{{Field: "v", Direction: tt.dir}}, nil)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, d := range got {
				ids[i] = d["id"].(string)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSort_MixedKindsIgnoreInputOrder(t *testing.T) {
	tests := []struct {
		docs []query.Document
		want []any
	}{
		{[]query.Document{{"v": 10.0}, {"v": "9"}, {"v": "1a"}}, []any{10.0, "1a", "9"}},
		{[]query.Document{{"v": "9"}, {"v": "1a"}, {"v": 10.0}}, []any{10.0, "1a", "9"}},
		{[]query.Document{{"v": "1a"}, {"v": 10.0}, {"v": "9"}}, []any{10.0, "1a", "9"}},
		{[]query.Document{{"v": true}, {"v": "1a"}, {"v": 10.0}, {"v": false}}, []any{10.0, "1a", false, true}},
	}
	for _, tt := range tests {
		got, err := query.Sort(tt.docs, []query.SortKey{{Field: "v"}}, nil)
		require.NoError(t, err)
		vals := make([]any, len(got))
		for i, d := range got {
			vals[i] = d["v"]
		}
		assert.Equal(t, tt.want, vals)
	}
}

func TestSort_UsesKeySchemaCast(t *testing.T) {
	docs := []query.Document{
		{"id": "a", "date": "2013-03-08T01:00:00+05:00"},
		{"id": "b", "date": "2013-03-07 21:00"},
		{"id": "c", "date": "2013-03-07 19:30"},
	}
	keys := []query.SortKey{{Field: "when", Direction: query.Ascending}}

	got, err := query.Sort(docs, keys, dateSchema(t))
	require.NoError(t, err)
	assert.Equal(t, []any{"c", "a", "b"}, []any{got[0]["id"], got[1]["id"], got[2]["id"]})

	plain, err := query.Sort(docs, []query.SortKey{{Field: "date"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"c", "b", "a"}, []any{plain[0]["id"], plain[1]["id"], plain[2]["id"]})
}

func TestLimit(t *testing.T) {
	docs := []query.Document{{"i": 0.0}, {"i": 1.0}, {"i": 2.0}}

	tests := []struct {
		name  string
		limit []int
		want  []query.Document
	}{
		{"none", nil, docs},
		{"count only", []int{1}, docs[:1]},
		{"count past end", []int{5}, docs},
		{"zero count", []int{0}, []query.Document{}},
		{"offset and count", []int{1, 1}, docs[1:2]},
		{"offset only", []int{1, 0}, docs[1:]},
		{"offset past end", []int{4, 2}, []query.Document{}},
		{"count past end after offset", []int{2, 5}, docs[2:]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.Limit(docs, tt.limit)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestSelect(t *testing.T) {
	docs := []query.Document{
		{"a": "1", "b": "2", "c": "3"},
		{"c": "4"},
	}
	got := query.Select(docs, []string{"a", "b"})
	assert.Equal(t, []query.Document{{"a": "1", "b": "2"}, {}}, got)
	assert.Equal(t, "3", docs[0]["c"], "input is not modified")

	assert.Equal(t, docs, query.Select(docs, nil))
}

func TestExec_FullPipeline(t *testing.T) {
	docs := []query.Document{
		{"identifier": "b", "title": "e"},
		{"identifier": "a", "title": "f"},
		{"identifier": "b", "title": "d"},
		{"identifier": "c", "title": "g"},
	}
	var opts query.Options
	require.NoError(t, json.Unmarshal([]byte(`{
		"sort_on": [["identifier", "ascending"], ["title", "descending"]],
		"limit": [2, 1],
		"select_list": ["title"]
	}`), &opts))

	q, err := query.Create(`NOT identifier: "c"`, nil)
	require.NoError(t, err)

	got, err := query.Exec(context.Background(), q, docs, opts)
	require.NoError(t, err)
	assert.Equal(t, []query.Document{{"title": "d"}}, got)
}

func TestOptions_JSON(t *testing.T) {
	var opts query.Options
	err := json.Unmarshal([]byte(`{"sort_on": [["a", "up"]]}`), &opts)
	assert.ErrorIs(t, err, query.ErrConfig)
	assert.Contains(t, err.Error(), "unsupported sort direction")

	err = json.Unmarshal([]byte(`{"sort_on": [["a"]]}`), &opts)
	assert.ErrorIs(t, err, query.ErrConfig)

	in := query.Options{
		SortOn: []query.SortKey{{Field: "a", Direction: query.Descending}},
		Limit:  []int{0, 10},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sort_on": [["a", "descending"]], "limit": [0, 10]}`, string(data))
}

func TestOptions_Validate(t *testing.T) {
	q := query.MustCreate("", nil)
	ctx := context.Background()

	_, err := query.Exec(ctx, q, nil, query.Options{Limit: []int{1, 2, 3}})
	assert.ErrorIs(t, err, query.ErrConfig)

	_, err = query.Exec(ctx, q, nil, query.Options{Limit: []int{-1}})
	assert.ErrorIs(t, err, query.ErrConfig)

	_, err = query.Exec(ctx, q, nil, query.Options{SortOn: []query.SortKey{{Field: "a", Direction: 7}}})
	assert.ErrorIs(t, err, query.ErrConfig)

	_, err = query.ParseDirection("sideways")
	assert.ErrorIs(t, err, query.ErrConfig)
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want query.SortKey
	}{
		{"title", query.SortKey{Field: "title"}},
		{"title:asc", query.SortKey{Field: "title"}},
		{"year:desc", query.SortKey{Field: "year", Direction: query.Descending}},
		{"year:descending", query.SortKey{Field: "year", Direction: query.Descending}},
		{"time:12", query.SortKey{Field: "time:12"}},
		{":desc", query.SortKey{Field: ":desc"}},
	}
	for _, tt := range tests {
		got, err := query.ParseSortKey(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := query.ParseSortKey("")
	assert.ErrorIs(t, err, query.ErrConfig)
}

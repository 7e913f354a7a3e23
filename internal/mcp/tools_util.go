// tools_util.go provides helpers shared by the tool handlers that
// extensions contribute.
//
// Optional parameters are read permissively: an LLM that omits one or sends
// it in an unexpected shape gets the default rather than a type error.

package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/docq/internal/store"
	"github.com/jpl-au/docq/query"
)

// Author returns the caller's author parameter, or "mcp".
func Author(req mcp.CallToolRequest) string {
	return req.GetString("author", "mcp")
}

// Ints reads an array of numbers. JSON numbers decode as float64.
func Ints(req mcp.CallToolRequest, name string) []int {
	arr, ok := req.GetArguments()[name].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, v := range arr {
		if f, ok := v.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}

// QueryOptions reads the select, sort and limit parameters shared by the
// query tools. Sort keys use the command-line form "field:desc".
func QueryOptions(req mcp.CallToolRequest) (query.Options, error) {
	opts := query.Options{
		SelectList: req.GetStringSlice("select", nil),
		Limit:      Ints(req, "limit"),
	}
	for _, s := range req.GetStringSlice("sort", nil) {
		k, err := query.ParseSortKey(s)
		if err != nil {
			return opts, err
		}
		opts.SortOn = append(opts.SortOn, k)
	}
	return opts, opts.Validate()
}

// Spec returns the query parameter as given: a query string, or an object
// in the JSON query form.
func Spec(req mcp.CallToolRequest) (any, error) {
	v, ok := req.GetArguments()["query"]
	if !ok {
		return "", nil
	}
	switch v.(type) {
	case string, map[string]any:
		return v, nil
	}
	return nil, fmt.Errorf("query must be a string or an object, got %T", v)
}

// JSONResult serialises v as indented JSON in a text result. Marshalling
// failures become tool errors so the client always gets a readable reply.
func JSONResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

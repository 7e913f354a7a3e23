// tools.go implements the docq_query and docq_parse MCP tools.

package query

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/log"
	mcpx "github.com/jpl-au/docq/internal/mcp"
)

// MCPTools returns the query tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("docq_query",
				mcp.WithDescription(`Run a query over the stored documents. The query is a string such as 'title: "Report%" AND year: >= 2020' or its JSON form. See docq_guide topic "query".`),
				mcp.WithString("query", mcp.Description("Query string or JSON query object; empty matches everything")),
				mcp.WithArray("select", mcp.Description("Fields to return"), mcp.WithStringItems()),
				mcp.WithArray("sort", mcp.Description(`Sort keys, "field" or "field:desc"`), mcp.WithStringItems()),
				mcp.WithArray("limit", mcp.Description("[count] or [skip, count]"), mcp.WithNumberItems()),
				mcp.WithString("author", mcp.Description("Author attribution for the audit log")),
			),
			Handler: queryTool,
		},
		{
			Tool: mcp.NewTool("docq_parse",
				mcp.WithDescription("Parse a query without running it. Returns the canonical form and the JSON form."),
				mcp.WithString("query", mcp.Required(), mcp.Description("Query string or JSON query object")),
			),
			Handler: parseTool,
		},
	}
}

func queryTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := mcpx.Spec(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := mcpx.QueryOptions(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	svc := extCtx.Service()
	q, err := svc.Parse(spec)
	if err != nil {
		log.Event("mcp:docq_query", "query").Author(mcpx.Author(req)).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := svc.Query(ctx, q, opts)

	log.Event("mcp:docq_query", "query").
		Author(mcpx.Author(req)).
		Query(logText(q)).
		Rows(len(rows)).
		Detail("sort", opts.SortOn).
		Detail("limit", opts.Limit).
		Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(rows)
}

func parseTool(_ context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, err := mcpx.Spec(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q, err := extCtx.Service().Parse(spec)

	log.Event("mcp:docq_parse", "parse").Author(mcpx.Author(req)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(newParseResult(q))
}

// tools.go implements the document MCP tools: docq_get, docq_put, docq_rm
// and docq_ls. They return JSON for the client to parse rather than the
// CLI's text output, and report failures as tool errors.

package document

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/log"
	mcpx "github.com/jpl-au/docq/internal/mcp"
	"github.com/jpl-au/docq/query"
)

// MCPTools returns the document tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		{
			Tool: mcp.NewTool("docq_get",
				mcp.WithDescription("Read a JSON document by id"),
				mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
			),
			Handler: getTool,
		},
		{
			Tool: mcp.NewTool("docq_put",
				mcp.WithDescription("Create or replace a JSON document. Returns the id it was stored under."),
				mcp.WithString("id", mcp.Description("Document id; defaults to the body's _id or a generated id")),
				mcp.WithObject("body", mcp.Required(), mcp.Description("The document, a JSON object")),
				mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
				mcp.WithBoolean("create", mcp.Description("Fail if the document already exists")),
			),
			Handler: putTool,
		},
		{
			Tool: mcp.NewTool("docq_rm",
				mcp.WithDescription("Permanently delete a document"),
				mcp.WithString("id", mcp.Required(), mcp.Description("Document id")),
				mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution for the audit log")),
			),
			Handler: rmTool,
		},
		{
			Tool: mcp.NewTool("docq_ls",
				mcp.WithDescription("List document ids with size and timestamps"),
				mcp.WithString("prefix", mcp.Description("Only ids starting with this prefix")),
			),
			Handler: lsTool,
		},
	}
}

func getTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := extCtx.Service().Get(ctx, id)

	log.Event("mcp:docq_get", "read").Author(mcpx.Author(req)).Doc(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(doc.ToJSON())
}

func putTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := toolBody(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id := req.GetString("id", "")
	create := req.GetBool("create", false)

	stored, err := extCtx.Service().Put(ctx, id, body, create)

	log.Event("mcp:docq_put", "write").Author(author).Doc(stored).Detail("create", create).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(putResult{ID: stored})
}

// toolBody accepts the body as an object or, from clients that stringify
// arguments, as a JSON string.
func toolBody(req mcp.CallToolRequest) (query.Document, error) {
	switch v := req.GetArguments()["body"].(type) {
	case map[string]any:
		return v, nil
	case string:
		return decodeBody([]byte(v))
	case nil:
		return nil, errNotObject
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return decodeBody(data)
	}
}

func rmTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = extCtx.Service().Delete(ctx, id)

	log.Event("mcp:docq_rm", "delete").Author(author).Doc(id).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(rmResult{Deleted: []string{id}})
}

func lsTool(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := req.GetString("prefix", "")

	metas, err := extCtx.Service().List(ctx, prefix)

	log.Event("mcp:docq_ls", "list").Author(mcpx.Author(req)).Detail("prefix", prefix).Rows(len(metas)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcpx.JSONResult(metas)
}

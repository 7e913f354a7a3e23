// tools_init.go implements the MCP tool for initialising a repository.

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/log"
)

// initRepo handles docq_init tool calls.
func (h *handlers) initRepo(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if svc, _ := h.current(); svc != nil {
		return mcp.NewToolResultError("repository already initialised"), nil
	}

	local := req.GetBool("local", false)
	err := document.Init(false, h.db, local, h.dir)

	log.Event("mcp:docq_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.open(); err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open repository: " + err.Error()), nil
	}

	slog.Info("repository initialised", "local", local)

	if local {
		return mcp.NewToolResultText("repository initialised (local - gitignored)"), nil
	}
	return mcp.NewToolResultText("repository initialised"), nil
}

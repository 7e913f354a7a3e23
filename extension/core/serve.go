// serve.go implements the "docq serve" command.
//
// serve blocks handling MCP requests over stdio and opens the repository
// itself, so it can start before "docq init" and let the client create one.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific database:
  docq serve --db books    # serve docq-books.db`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.DB(), cmd.Dir(), extension.Tools())
		},
	}
}

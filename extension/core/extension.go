// Package core provides the core extension for docq.
// It registers commands: init, config, serve, guide, log, db, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the repository management commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newLogCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. docq_init and docq_guide are built into the server
// because they must work before a repository exists.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve: long-running MCP server opens the repository itself.
// log: reads the audit log, which lives outside the repository.
// db: manages gitignore entries without opening a database.
// version: displays build info.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "log", "db", "version"}
}

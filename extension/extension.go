// Package extension provides the plugin architecture for docq. Extensions
// group related commands and MCP tools and register at init time, so a new
// command family does not touch the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for docq extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns tools for "docq serve" to expose.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context once the repository
// has been opened.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a repository. Commands returned by NoStoreCommands() will
// not trigger store initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a repository exists
// 2. Commands that manage their own service lifecycle (serve, query --file)
// 3. Utility commands that only work on query text (parse, fmt)
type Storeless interface {
	NoStoreCommands() []string
}

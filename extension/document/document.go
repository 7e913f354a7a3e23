// Package document provides the document extension: put, get, rm, ls,
// import and export, plus the matching MCP tools.
package document

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the document extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "document".
func (e *Extension) Name() string { return "document" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the document commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newPutCmd(),
		e.newGetCmd(),
		e.newRmCmd(),
		e.newLsCmd(),
		newImportCmd(),
		e.newExportCmd(),
	}
}

// NoStoreCommands returns import, which opens its own service so that
// --dry-run works without a repository.
func (e *Extension) NoStoreCommands() []string {
	return []string{"import"}
}

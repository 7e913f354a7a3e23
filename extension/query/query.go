// Package query provides the query extension: query, parse, fmt and shell,
// plus the docq_query and docq_parse MCP tools.
package query

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/service"
	engine "github.com/jpl-au/docq/query"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the query extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "query".
func (e *Extension) Name() string { return "query" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the query commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newQueryCmd(),
		newParseCmd(),
		newFmtCmd(),
		e.newShellCmd(),
	}
}

// NoStoreCommands returns the commands that work without a repository:
// query opens its own service so that --file needs none, and parse and fmt
// only look at query text.
func (e *Extension) NoStoreCommands() []string {
	return []string{"query", "parse", "fmt"}
}

// readSpec returns the query text from args[0], or from stdin when there is
// no argument or it is "-".
func readSpec(c *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(c.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// specOf returns text as a query spec: the JSON form when it is an object,
// the query string otherwise.
func specOf(text string) any {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		return json.RawMessage(text)
	}
	return text
}

// logText returns the form of q recorded in the audit log: the canonical
// text when it reads back exactly, the JSON form otherwise.
func logText(q engine.Query) string {
	if engine.Expressible(q) == nil {
		return q.String()
	}
	b, err := json.Marshal(q)
	if err != nil {
		return q.String()
	}
	return string(b)
}

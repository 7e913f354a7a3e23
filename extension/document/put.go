// put.go implements the "docq put" command for storing documents.
//
// The body comes from the argument, from -f or from stdin, in that order.

package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/query"
)

// errNotObject is returned for a body that is valid JSON but not an object.
var errNotObject = errors.New("document body must be a JSON object")

// putResult contains the outcome of a put operation.
type putResult struct {
	ID string `json:"id"`
}

func (e *Extension) newPutCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "put [id] [json]",
		Short: "Store a document",
		Long: `Create or replace a JSON document.

  docq put notes/1 '{"title": "Report"}'
  docq put '{"_id": "notes/1", "title": "Report"}'
  docq put notes/1 -f report.json
  cat report.json | docq put

Without an id the body's _id is used, or a new id is generated.
Use --create to fail if the id already exists.`,
		Args: cobra.MaximumNArgs(2),
		RunE: e.runPut,
	}
	c.Flags().StringP(extension.FlagFile, "f", "", "Read the body from a file")
	c.Flags().Bool(extension.FlagCreate, false, "Fail if the document already exists")
	return c
}

func (e *Extension) runPut(c *cobra.Command, args []string) error {
	file, _ := c.Flags().GetString(extension.FlagFile)
	create, _ := c.Flags().GetBool(extension.FlagCreate)

	id, raw := "", ""
	switch {
	case len(args) == 2:
		id, raw = args[0], args[1]
	case len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "{"):
		raw = args[0]
	case len(args) == 1:
		id = args[0]
	}

	var data []byte
	switch {
	case raw != "":
		data = []byte(raw)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read file %q: %w", file, err))
		}
		data = b
	default:
		b, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		data = b
	}

	body, err := decodeBody(data)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	stored, err := e.svc.Put(c.Context(), id, body, create)

	log.Event("document:put", "write").
		Author(cmd.Author()).
		Doc(stored).
		Detail("create", create).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("put %q: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(putResult{ID: stored})
	}
	fmt.Fprintf(cmd.Out(), "Stored %s\n", stored)
	return nil
}

// decodeBody parses a single JSON object.
func decodeBody(data []byte) (query.Document, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse body: %w", err)
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return body, nil
}

// get.go implements the "docq get" command.

package document

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/store"
)

func (e *Extension) newGetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a document",
		Long: `Print a document's JSON body, indented.

Use --raw for compact JSON on one line, or -o json for the body together
with its id and timestamps.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runGet,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Compact JSON output")
	return c
}

func (e *Extension) runGet(c *cobra.Command, args []string) error {
	id := args[0]
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	doc, err := e.svc.Get(c.Context(), id)

	log.Event("document:get", "read").Author(cmd.Author()).Doc(id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("get %q: %w", id, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(doc.ToJSON())
	}

	var data []byte
	if raw {
		data, err = json.Marshal(doc.Body)
	} else {
		data, err = store.MarshalJSON(doc.Body)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("encode %q: %w", id, err))
	}
	fmt.Fprintln(cmd.Out(), string(data))
	return nil
}

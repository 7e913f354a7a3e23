// rm.go implements the "docq rm" command. Deletion is permanent.

package document

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/internal/log"
)

// rmResult contains the outcome of a delete operation.
type rmResult struct {
	Deleted []string `json:"deleted"`
}

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete documents",
		Long:  `Permanently delete one or more documents. Stops at the first id that does not exist.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	var result rmResult
	for _, id := range args {
		err := e.svc.Delete(c.Context(), id)

		log.Event("document:rm", "delete").Author(cmd.Author()).Doc(id).Write(err)

		if err != nil {
			if cmd.JSON() {
				_ = cmd.PrintJSON(result)
			}
			return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", id, err))
		}
		result.Deleted = append(result.Deleted, id)
		if !cmd.JSON() {
			fmt.Fprintf(cmd.Out(), "Deleted %s\n", id)
		}
	}
	return cmd.PrintJSON(result)
}

// ls.go implements the "docq ls" command for listing documents.

package document

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/format"
	"github.com/jpl-au/docq/internal/log"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List documents",
		Long:  `List document ids in order, optionally only those starting with prefix.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with size and update time")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Print the number of documents only")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	long, _ := c.Flags().GetBool(extension.FlagLong)
	count, _ := c.Flags().GetBool(extension.FlagCount)

	metas, err := e.svc.List(c.Context(), prefix)

	log.Event("document:ls", "list").
		Author(cmd.Author()).
		Detail("prefix", prefix).
		Rows(len(metas)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", prefix, err))
	}

	switch {
	case count && cmd.JSON():
		return cmd.PrintJSON(map[string]int{"count": len(metas)})
	case count:
		fmt.Fprintln(cmd.Out(), len(metas))
		return nil
	case cmd.JSON():
		return cmd.PrintJSON(metas)
	case long:
		return format.Long(cmd.Out(), metas)
	default:
		return format.List(cmd.Out(), metas)
	}
}

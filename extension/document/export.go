// export.go implements the "docq export" command.

package document

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/exporter"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/query"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <dir|-> [query]",
		Short: "Export documents as JSON",
		Long: `Export the documents matching a query, or all documents.

  docq export ./backup                      # one <id>.json per document
  docq export - 'year: >= 2020' > new.jsonl  # JSON lines on stdout

Both forms can be read back with "docq import".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runExport,
	}
	c.Flags().StringSlice(extension.FlagSort, nil, "Sort keys, field or field:desc")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Export at most n documents")
	c.Flags().Bool(extension.FlagRaw, false, "Compact JSON in files")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst, spec := args[0], ""
	if len(args) > 1 {
		spec = args[1]
	}

	var opts exporter.Options
	opts.Force = cmd.Force()
	opts.Compact, _ = c.Flags().GetBool(extension.FlagRaw)
	sorts, _ := c.Flags().GetStringSlice(extension.FlagSort)
	for _, s := range sorts {
		k, err := query.ParseSortKey(s)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Query.SortOn = append(opts.Query.SortOn, k)
	}
	if n, _ := c.Flags().GetInt(extension.FlagLimit); n != 0 {
		opts.Query.Limit = []int{n}
	}

	w := cmd.Out()
	if cmd.JSON() && dst != exporter.Stdout {
		w = io.Discard
	}
	result, err := exporter.Run(c.Context(), w, e.svc, spec, dst, opts)

	log.Event("document:export", "export").
		Author(cmd.Author()).
		Query(spec).
		Rows(result.Exported).
		Detail("dst", dst).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
	}
	if dst == exporter.Stdout {
		return nil
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprintf(cmd.Out(), "\nExported %d document(s)\n", result.Exported)
	return nil
}

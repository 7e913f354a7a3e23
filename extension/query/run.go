// run.go implements the "docq query" command.
//
// query is storeless. It opens the repository itself, or with --file loads
// the named documents into an in-memory service and queries those instead.

package query

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/config"
	docsvc "github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/format"
	"github.com/jpl-au/docq/internal/importer"
	"github.com/jpl-au/docq/internal/log"
	engine "github.com/jpl-au/docq/query"
)

func newQueryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "query [query|-]",
		Short: "Run a query over the documents",
		Long: `Run a query and print the matching documents.

  docq query 'title: "Report%" AND year: >= 2020'
  docq query 'author: Herbert' --sort year:desc --limit 5
  docq query '{"type": "simple", "key": "title", "value": "Dune"}'
  docq query 'Dune' --file books.jsonl

Without a query, or with "-", the query is read from stdin. An empty query
matches every document. See 'docq guide query' for the language.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runQuery,
	}
	c.Flags().StringSlice(extension.FlagSelect, nil, "Fields to return")
	c.Flags().StringSlice(extension.FlagSort, nil, "Sort keys, field or field:desc")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Return at most n documents")
	c.Flags().Int(extension.FlagSkip, 0, "Skip the first n documents")
	c.Flags().StringP(extension.FlagFile, "f", "", "Query documents from a file or directory instead of the repository")
	c.Flags().BoolP(extension.FlagCount, "c", false, "Print the number of matches only")
	return c
}

// queryOptions builds the pipeline options from the command's flags.
func queryOptions(c *cobra.Command) (engine.Options, error) {
	var opts engine.Options
	opts.SelectList, _ = c.Flags().GetStringSlice(extension.FlagSelect)
	sorts, _ := c.Flags().GetStringSlice(extension.FlagSort)
	for _, s := range sorts {
		k, err := engine.ParseSortKey(s)
		if err != nil {
			return opts, err
		}
		opts.SortOn = append(opts.SortOn, k)
	}

	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	skip, _ := c.Flags().GetInt(extension.FlagSkip)
	switch {
	case skip != 0:
		opts.Limit = []int{skip, limit}
	case limit != 0:
		opts.Limit = []int{limit}
	}
	return opts, opts.Validate()
}

func runQuery(c *cobra.Command, args []string) error {
	text, err := readSpec(c, args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	opts, err := queryOptions(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	count, _ := c.Flags().GetBool(extension.FlagCount)
	file, _ := c.Flags().GetString(extension.FlagFile)

	svc, err := openService(c, file)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	defer svc.Close()

	q, err := svc.Parse(specOf(text))
	if err != nil {
		log.Event("query:query", "query").Author(cmd.Author()).Query(text).Write(err)
		return cmd.PrintJSONError(fmt.Errorf("parse query: %w", err))
	}

	rows, err := svc.Query(c.Context(), q, opts)

	log.Event("query:query", "query").
		Author(cmd.Author()).
		Query(logText(q)).
		Rows(len(rows)).
		Detail("sort", opts.SortOn).
		Detail("limit", opts.Limit).
		Detail("file", file).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("query: %w", err))
	}

	switch {
	case count && cmd.JSON():
		return cmd.PrintJSON(map[string]int{"count": len(rows)})
	case count:
		fmt.Fprintln(cmd.Out(), len(rows))
		return nil
	case cmd.JSON():
		return cmd.PrintJSON(rows)
	default:
		return format.Rows(cmd.Out(), rows, opts.SelectList)
	}
}

// openService opens the repository, or with file set an in-memory service
// holding the documents imported from file.
func openService(c *cobra.Command, file string) (*docsvc.Service, error) {
	if file == "" {
		svc, err := docsvc.New(cmd.DB(), cmd.Dir())
		if err != nil {
			return nil, fmt.Errorf("open repository: %w", err)
		}
		log.SetProject(svc.Dir())
		return svc, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	svc, err := docsvc.NewMemory(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := importer.Run(c.Context(), io.Discard, svc, file, importer.Options{}); err != nil {
		svc.Close()
		return nil, fmt.Errorf("load %q: %w", file, err)
	}
	return svc, nil
}

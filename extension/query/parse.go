// parse.go implements "docq parse" and "docq fmt", the commands that work
// on query text alone.
//
// parse binds the configured key schema, so an unknown cast or match
// function is reported here before any document is read. fmt only checks
// syntax and prints the canonical form.

package query

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/config"
	"github.com/jpl-au/docq/internal/diff"
	docsvc "github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/format"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/store"
	engine "github.com/jpl-au/docq/query"
)

// parseResult is the JSON output of parse.
type parseResult struct {
	Query string         `json:"query"`
	Tree  map[string]any `json:"tree"`
	Exact bool           `json:"exact"`          // Query reads back as Tree
	Note  string         `json:"note,omitempty"` // Why it does not
}

func newParseResult(q engine.Query) parseResult {
	r := parseResult{Query: q.String(), Tree: engine.Serialize(q), Exact: true}
	if err := engine.Expressible(q); err != nil {
		r.Exact, r.Note = false, err.Error()
	}
	return r
}

// fmtResult is the JSON output of fmt.
type fmtResult struct {
	Query   string `json:"query"`
	Changed bool   `json:"changed"`
}

func newParseCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "parse [query|-]",
		Short: "Check a query and show how it is read",
		Long: `Parse a query against the configured key schema and print its
canonical form, or with --json its JSON form.

Some JSON queries have no exact text form, such as a key with an inline
descriptor. parse then warns on stderr; the --json form is always exact.

  docq parse 'a: x b: y OR c: z'
  docq parse 'year: >= 2020' --json

The JSON form can be passed back to "docq query".`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	c.Flags().Bool(extension.FlagJSONQuery, false, "Print the JSON form")
	return c
}

func runParse(c *cobra.Command, args []string) error {
	text, err := readSpec(c, args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	asJSON, _ := c.Flags().GetBool(extension.FlagJSONQuery)

	cfg, err := config.Load()
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	schema, err := docsvc.LoadSchema(cfg)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	q, err := engine.Create(specOf(text), schema)

	log.Event("query:parse", "parse").Author(cmd.Author()).Query(text).Write(err)

	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res := newParseResult(q)
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	if asJSON {
		b, err := store.MarshalJSON(res.Tree)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.Out(), string(b))
		return nil
	}
	fmt.Fprintln(cmd.Out(), res.Query)
	if !res.Exact {
		fmt.Fprintf(c.ErrOrStderr(), "warning: %s (use --json for the exact form)\n", res.Note)
	}
	return nil
}

func newFmtCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "fmt [query|-]",
		Short: "Print a query in canonical form",
		Long: `Rewrite a query in canonical form: explicit AND, grouped
operands and quoted values.

  docq fmt 'a:x b:y'            # ( a: "x" AND b: "y" )
  docq fmt --diff 'a:x b:y'`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFmt,
	}
	c.Flags().Bool(extension.FlagDiff, false, "Show the changes as a diff")
	return c
}

func runFmt(c *cobra.Command, args []string) error {
	text, err := readSpec(c, args)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)

	q, err := engine.Parse(text)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	canonical := engine.Format(q)

	if cmd.JSON() {
		return cmd.PrintJSON(fmtResult{Query: canonical, Changed: canonical != text})
	}
	if !showDiff {
		fmt.Fprintln(cmd.Out(), canonical)
		return nil
	}
	d := diff.Compute(text, canonical, "input", "canonical")
	if !d.Changed {
		fmt.Fprintln(cmd.Out(), "Already canonical")
		return nil
	}
	fmt.Fprint(cmd.Out(), d.Format(format.IsTerminal(cmd.Out())))
	return nil
}

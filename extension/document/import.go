// import.go implements the "docq import" command.
//
// import is storeless: it opens its own service, and not at all for
// --dry-run, so a dry run works before "docq init".

package document

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	docsvc "github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/importer"
	"github.com/jpl-au/docq/internal/log"
)

func newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <path|->",
		Short: "Import JSON documents from files",
		Long: `Import JSON documents from a file, a directory or stdin ("-").

A file holds one object, an array of objects, or one object per line.
Directories are searched recursively for .json, .jsonl and .ndjson files.
Ids come from each object's _id; a file's only object is otherwise named
after the file (with --prefix prepended).`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	c.Flags().StringP(extension.FlagPrefix, "p", "", "Prefix for ids derived from file names")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	c.Flags().BoolP(extension.FlagIncludeHidden, "H", false, "Include hidden files/dirs")
	c.Flags().Bool(extension.FlagCreate, false, "Fail if a document already exists")
	return c
}

func runImport(c *cobra.Command, args []string) error {
	src := args[0]
	var opts importer.Options
	opts.Prefix, _ = c.Flags().GetString(extension.FlagPrefix)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagIncludeHidden)
	opts.Create, _ = c.Flags().GetBool(extension.FlagCreate)

	var dst importer.Putter
	if !opts.DryRun {
		svc, err := docsvc.New(cmd.DB(), cmd.Dir())
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("open repository: %w", err))
		}
		defer svc.Close()
		log.SetProject(svc.Dir())
		dst = svc
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := importer.Run(c.Context(), w, dst, src, opts)

	log.Event("document:import", "import").
		Author(cmd.Author()).
		Rows(result.Imported).
		Detail("source", src).
		Detail("dry_run", opts.DryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	if len(result.IDs) == 0 {
		fmt.Fprintf(cmd.Out(), "No JSON documents found in %q\n", src)
		return nil
	}
	if !opts.DryRun {
		fmt.Fprintf(cmd.Out(), "\nImported %d document(s)\n", result.Imported)
	}
	return nil
}

// init.go implements the "docq init" command for repository initialisation.
//
// Init does not create config; that is managed separately via "docq config",
// as git separates init from config. The --local flag controls whether the
// database is committed to git or gitignored.

package core

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/document"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/repo"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new docq repository",
		Long: `Creates a .docq/docq.db database in the current directory.

Use --db to create additional databases:
  docq init --db books    # creates .docq/docq-books.db

Use --dir to create in a different directory:
  docq init --dir /path/to/project    # creates /path/to/project/.docq/docq.db

Use --local to exclude from git:
  docq init --db scratch --local    # creates docq-scratch.db, not committed`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits the current project's .gitignore, which is unrelated to a
	// database created under --dir.
	if local && dir != "" {
		return cmd.PrintJSONError(errors.New("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := document.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"path": loc, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised docq repository in %s\n", loc)
	return nil
}

// db.go implements the "docq db" command for database management.
//
// db only edits gitignore entries and never opens a database, so it works on
// databases that are locked or damaged.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/repo"
)

const flagShare = "share"

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  docq db                    # list all databases
  docq db --local            # mark default database as local
  docq db books --local      # mark books database as local
  docq db books --share      # mark as shared
  docq db --dir /path        # list databases in another project

Local databases are not committed. Shared databases are.
If no name is given with --local or --share, operates on the default database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(flagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, flagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(flagShare)

	// repo functions take the .docq directory, --dir names the project root
	dir := cmd.Dir()
	docqDir := ""
	if dir != "" {
		docqDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		err := listDBs(docqDir)
		log.Event("core:db", "list").Author(cmd.Author()).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	var (
		action string
		err    error
	)
	switch {
	case local:
		action, err = "ignore", repo.IgnoreDB(name, docqDir)
	case share:
		action, err = "unignore", repo.UnignoreDB(name, docqDir)
	default:
		var ignored bool
		ignored, err = repo.IsIgnored(name, docqDir)
		log.Event("core:db", "status").Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
		}
		return printStatus(name, ignored)
	}

	log.Event("core:db", action).Author(cmd.Author()).Detail("db", name).Detail("dir", dir).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db %s %q: %w", action, name, err))
	}
	return printStatus(name, local)
}

func printStatus(name string, local bool) error {
	status := "shared"
	if local {
		status = "local"
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"file": repo.DBFileName(name), "status": status})
	}
	fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status)
	return nil
}

// listDBs displays all databases in the target directory with their status.
func listDBs(dir string) error {
	dbs, err := repo.ListDBs(dir)
	if err != nil {
		return err
	}
	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
		return nil
	}
	for _, db := range dbs {
		status := "shared"
		if db.Local {
			status = "local"
		}
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status)
	}
	return nil
}

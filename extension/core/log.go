// log.go implements the "docq log" command, which reads back the audit log.
//
// The log database lives in the user's home directory and is shared by every
// repository. Inside a repository only that repository's entries are shown;
// elsewhere, every entry.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/extension"
	"github.com/jpl-au/docq/internal/format"
	"github.com/jpl-au/docq/internal/log"
	"github.com/jpl-au/docq/internal/repo"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent audit log entries",
		Long: `Show recent puts, deletes and queries, newest first.

  docq log              # last 20 entries for this repository
  docq log --limit 0    # every entry`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Maximum entries (0 for all)")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	if dir, err := repo.DiscoverDir(); err == nil {
		log.SetProject(dir)
	}

	recs, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read log: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(recs)
	}
	return format.Log(cmd.Out(), recs)
}

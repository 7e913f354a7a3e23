// shell.go implements "docq shell", an interactive prompt for queries.
//
// Line editing and history come from liner; everything typed is handed to
// a shell.Session. History is saved in the repository so each project keeps
// its own.

package query

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/internal/repo"
	"github.com/jpl-au/docq/internal/shell"
)

func (e *Extension) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Query interactively",
		Long: `Open an interactive prompt. Each line is run as a query; lines
starting with a dot set options for the queries that follow.

  docq> .sort year:desc
  docq> author: Herbert

Type .help for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: e.runShell,
	}
}

func (e *Extension) runShell(c *cobra.Command, _ []string) error {
	session := shell.New(e.svc, cmd.Out(), cmd.Author())

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(s string) []string {
		var out []string
		for _, name := range shell.Commands() {
			if strings.HasPrefix(name, s) {
				out = append(out, name)
			}
		}
		return out
	})

	history := ""
	if dir := e.svc.Dir(); dir != "" {
		history = filepath.Join(dir, repo.HistoryFile)
		if f, err := os.Open(history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Fprintln(cmd.Out(), "docq shell. Type .help for commands, .quit to leave.")
	for {
		input, err := line.Prompt(shell.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		quit, err := session.Execute(c.Context(), input)
		if err != nil {
			fmt.Fprintf(c.ErrOrStderr(), "error: %v\n", err)
		}
		if quit {
			break
		}
	}

	if history != "" {
		f, err := os.Create(history)
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}
	return nil
}

// guide.go implements the "docq guide" command.
//
// Guides are embedded in the binary. A terminal gets glamour rendering;
// a pipe gets the raw markdown so it can be fed to an LLM as context.

package core

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/docq/cmd"
	"github.com/jpl-au/docq/guide"
	"github.com/jpl-au/docq/internal/format"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the docq guide",
		Long: `Outputs the docq guide.

  docq guide             # main guide
  docq guide query       # the query language
  docq guide keyschema   # key schema files`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			names, _ := guide.List()
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			return format.Markdown(cmd.Out(), content)
		},
	}
}

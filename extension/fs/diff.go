// diff.go implements the "llmfs diff" command.

package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/diff"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (e *Extension) newDiffCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare two workspace files",
		Long: `Show a line diff between two files inside the workspace.
Output is coloured when stdout is a terminal.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runDiff,
	}
	c.Flags().Bool(extension.FlagNoColour, false, "Disable colour")
	return c
}

func (e *Extension) runDiff(c *cobra.Command, args []string) error {
	noColour, _ := c.Flags().GetBool(extension.FlagNoColour)
	colour := !noColour && term.IsTerminal(int(os.Stdout.Fd()))

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	result, err := diff.Run(c.Context(), w, e.ctx.Workspace(), args[0], args[1], colour)

	log.Event("fs:diff", "read").
		Author(cmd.Author()).
		Path(args[0]).
		Detail("other", args[1]).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("diff: %w", err))
	}
	return cmd.PrintJSON(result)
}

// replace.go implements the "llmfs replace" command.
//
// Two modes: exact text replacement (old must be unique unless --all) and
// line-range replacement with --lines, which is handy after grep has told
// you where something lives.

package fs

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/edit"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newReplaceCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "replace <path> <old> <new> | <path> --lines START:END [replacement]",
		Short: "Replace text in a workspace file",
		Long: `Replace an exact string, or a range of lines, in a file.

  llmfs replace main.go "oldName" "newName"       # old must occur once
  llmfs replace main.go "oldName" "newName" --all # every occurrence
  llmfs replace main.go --lines 10:12 "x := 1"    # lines 10-12
  llmfs replace main.go --lines 5:5 < body.txt    # replacement from stdin

The diff of the change is printed. Use --dry-run to preview.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: e.runReplace,
	}
	c.Flags().Bool(extension.FlagAll, false, "Replace every occurrence")
	c.Flags().StringP(extension.FlagLines, "l", "", "Line range to replace (e.g., 10:20)")
	c.Flags().Bool(extension.FlagDryRun, false, "Show the diff without writing")
	return c
}

func (e *Extension) runReplace(c *cobra.Command, args []string) error {
	p := args[0]
	all, _ := c.Flags().GetBool(extension.FlagAll)
	lines, _ := c.Flags().GetString(extension.FlagLines)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}

	var result edit.Result
	var err error
	if lines != "" {
		if len(args) > 2 {
			return cmd.PrintJSONError(fmt.Errorf("--lines takes at most one replacement argument"))
		}
		start, end, perr := edit.ParseLineRange(lines)
		if perr != nil {
			return cmd.PrintJSONError(perr)
		}
		replacement, rerr := contentArg(c, args, 1)
		if rerr != nil {
			return cmd.PrintJSONError(rerr)
		}
		result, err = edit.RunLineRange(c.Context(), w, e.ctx.Workspace(), p, replacement, edit.LineRangeOptions{
			Start: start, End: end, DryRun: dryRun,
		})
	} else {
		if len(args) != 3 {
			return cmd.PrintJSONError(fmt.Errorf("replace needs <path> <old> <new>, or --lines"))
		}
		result, err = edit.Run(c.Context(), w, e.ctx.Workspace(), p, edit.Options{
			Old: args[1], New: args[2], ReplaceAll: all, DryRun: dryRun,
		})
	}

	log.Event("fs:replace", "edit").
		Author(cmd.Author()).
		Path(p).
		Detail("replacements", result.Replacements).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("replace in %q: %w", p, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprint(w, result.Diff)
	return nil
}

// ls.go implements the "llmfs ls" command.

package fs

import (
	"fmt"
	"io"
	"slices"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/ls"
	"github.com/spf13/cobra"
)

var sortFields = []string{string(ls.SortName), string(ls.SortTime), string(ls.SortSize)}

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a workspace directory",
		Long: `List the entries of a directory inside the workspace.

  llmfs ls                       # workspace root
  llmfs ls src -l                # long format
  llmfs ls --tree --depth 2      # recursive tree
  llmfs ls --ignore "*.log" --ignore node_modules`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format (type, size, modified)")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Recursive tree view")
	c.Flags().Int(extension.FlagDepth, 0, "Maximum tree depth (0 = unlimited)")
	c.Flags().BoolP(extension.FlagHidden, "A", false, "Include dot entries")
	c.Flags().StringSlice(extension.FlagIgnore, nil, "Glob patterns to skip (repeatable)")
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: name, time, size")
	c.Flags().BoolP(extension.FlagReverse, "r", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	long, _ := c.Flags().GetBool(extension.FlagLong)
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	depth, _ := c.Flags().GetInt(extension.FlagDepth)
	hidden, _ := c.Flags().GetBool(extension.FlagHidden)
	ignore, _ := c.Flags().GetStringSlice(extension.FlagIgnore)
	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	reverse, _ := c.Flags().GetBool(extension.FlagReverse)

	if sortBy != "" && !slices.Contains(sortFields, sortBy) {
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q (valid: %v)", sortBy, sortFields))
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	result, err := ls.Run(c.Context(), w, e.ctx.Workspace(), ls.Options{
		Path:    path,
		Ignore:  ignore,
		Hidden:  hidden,
		Tree:    tree,
		Depth:   depth,
		Long:    long,
		Sort:    ls.SortField(sortBy),
		Reverse: reverse,
	})

	log.Event("fs:ls", "list").
		Author(cmd.Author()).
		Path(path).
		Detail("count", len(result.Entries)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", path, err))
	}
	return cmd.PrintJSON(result)
}

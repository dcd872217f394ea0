// glob.go implements the "llmfs glob" command.
//
// Patterns use doublestar syntax (*, **, ?, [abc], {a,b}). Results are
// workspace-relative and in lexical order.

package search

import (
	"fmt"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/internal/format"
	"github.com/jpl-au/llmfs/internal/glob"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newGlobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glob <pattern> [path]",
		Short: "List workspace paths matching a pattern",
		Long: `List files and directories matching a glob pattern.

  llmfs glob "**/*.go"        # every Go file
  llmfs glob "*.md" docs      # markdown directly under docs/
  llmfs glob "src/**/*.{ts,tsx}"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runGlob,
	}
}

func (e *Extension) runGlob(c *cobra.Command, args []string) error {
	pattern := args[0]
	path := ""
	if len(args) > 1 {
		path = args[1]
	}

	paths, err := glob.Run(c.Context(), e.ctx.Workspace(), glob.Options{Pattern: pattern, Path: path})

	log.Event("search:glob", "search").
		Author(cmd.Author()).
		Path(path).
		Detail("pattern", pattern).
		Detail("count", len(paths)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("glob %q: %w", pattern, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(paths)
	}
	return format.Paths(cmd.Out(), paths)
}

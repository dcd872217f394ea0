// grep.go implements the "llmfs grep" command.
//
// grep is backed by ripgrep. The first run may download rg into the cache
// directory (see "llmfs rg install"); later runs reuse it.

package search

import (
	"io"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/grep"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newGrepCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "grep <pattern> [path]",
		Short: "Search file contents with ripgrep",
		Long: `Search file contents in the workspace using a regular expression.

  llmfs grep "TODO"                      # whole workspace
  llmfs grep "export" src --include "*.ts"
  llmfs grep "func \w+Handler" -n 20     # at most 20 matches

Hidden files are searched; .git is always skipped. Results are grouped by
file in path order. For an rg-free search, use 'llmfs scan'.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runGrep,
	}
	c.Flags().String(extension.FlagInclude, "", "Only search files matching this glob (e.g. \"*.{ts,tsx}\")")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum matches (default search.max_matches)")
	c.Flags().Duration(extension.FlagTimeout, 0, "Time budget (default search.timeout)")
	return c
}

func (e *Extension) runGrep(c *cobra.Command, args []string) error {
	pattern := args[0]
	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	include, _ := c.Flags().GetString(extension.FlagInclude)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	timeout, _ := c.Flags().GetDuration(extension.FlagTimeout)

	cfg := e.ctx.Config()
	if limit <= 0 {
		limit = cfg.MaxMatches()
	}
	if timeout <= 0 {
		timeout = cfg.SearchTimeout()
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	report, err := grep.Run(c.Context(), w, e.ctx.Workspace(), e.ctx.Ripgrep(), grep.Options{
		Pattern: pattern,
		Path:    path,
		Include: include,
		Limit:   limit,
		Timeout: timeout,
	})

	log.Event("search:grep", "search").
		Author(cmd.Author()).
		Path(path).
		Detail("pattern", pattern).
		Detail("include", include).
		Detail("count", report.Matches).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(err)
	}
	return cmd.PrintJSON(report)
}

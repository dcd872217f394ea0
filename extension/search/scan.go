// scan.go implements the "llmfs scan" command, the in-process counterpart
// of grep. It needs no external binary and uses Go regexp syntax.

package search

import (
	"fmt"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/scan"
	"github.com/spf13/cobra"
)

func (e *Extension) newScanCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "scan <pattern> [path]",
		Short: "Search file contents without ripgrep",
		Long: `Search file contents with Go's regexp engine. Files are selected with
--include (default "**/*"); unreadable files are skipped.

  llmfs scan "TODO"
  llmfs scan -i "deprecated" src --include "**/*.go"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runScan,
	}
	c.Flags().String(extension.FlagInclude, "", "Glob selecting files to scan (default \"**/*\")")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Case-insensitive matching")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Stop after this many matches (0 = unlimited)")
	return c
}

func (e *Extension) runScan(c *cobra.Command, args []string) error {
	pattern := args[0]
	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	include, _ := c.Flags().GetString(extension.FlagInclude)
	ignoreCase, _ := c.Flags().GetBool(extension.FlagIgnoreCase)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	matches, err := scan.Run(c.Context(), e.ctx.Workspace(), scan.Options{
		Pattern:       pattern,
		Path:          path,
		Include:       include,
		IgnoreCase:    ignoreCase,
		MaxLineLength: e.ctx.Config().MaxLineLength(),
		MaxMatches:    limit,
	})

	log.Event("search:scan", "search").
		Author(cmd.Author()).
		Path(path).
		Detail("pattern", pattern).
		Detail("count", len(matches)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("scan %q: %w", pattern, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(matches)
	}
	for _, m := range matches {
		fmt.Fprintf(cmd.Out(), "%s:%d:%s\n", m.Path, m.LineNumber, m.Line)
	}
	return nil
}

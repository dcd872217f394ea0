// log.go implements "llmfs log", a reader for the audit trail, and
// "llmfs log prune" for retention.
//
// Design: entries from every workspace share one database under the home
// directory. By default only the current workspace is shown; --all widens
// the view.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/duration"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show the audit log",
		Long: `Show recorded CLI commands and MCP tool calls, newest first.

  llmfs log                    # this workspace, last 50
  llmfs log --since 2d         # last two days
  llmfs log --source mcp:      # MCP tool calls only
  llmfs log --failed --all     # failures in every workspace
  llmfs log prune --older-than 30d`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this (e.g. 12h, 7d, 4w)")
	c.Flags().String(extension.FlagSource, "", "Source, or prefix ending in ':' (e.g. fs:write, mcp:)")
	c.Flags().Bool(extension.FlagFailed, false, "Only failed operations")
	c.Flags().Bool(extension.FlagAll, false, "Include every workspace")
	c.Flags().IntP(extension.FlagLimit, "n", 50, "Maximum entries (0 = unlimited)")
	c.AddCommand(newLogPruneCmd())
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	since, _ := c.Flags().GetString(extension.FlagSince)
	source, _ := c.Flags().GetString(extension.FlagSource)
	failed, _ := c.Flags().GetBool(extension.FlagFailed)
	all, _ := c.Flags().GetBool(extension.FlagAll)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	f := log.Filter{Source: source, Workspace: !all, Failed: failed, Limit: limit}
	if since != "" {
		t, err := duration.Ago(since, time.Now())
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("log --since: %w", err))
		}
		f.Since = t
	}

	records, err := log.Query(c.Context(), f)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(records)
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.Out(), "No log entries")
		return nil
	}
	for _, r := range records {
		status := "ok"
		if !r.Success {
			status = "FAIL " + r.Error
		}
		fmt.Fprintf(cmd.Out(), "%s  %-24s %-8s %s  %s\n",
			r.Start.Format(time.DateTime), r.Source, r.Author, r.Path, status)
	}
	return nil
}

func newLogPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete old audit log entries",
		Long: `Permanently delete audit entries older than a cutoff, across all workspaces.

  llmfs log prune --older-than 30d --dry-run   # count only
  llmfs log prune --older-than 30d`,
		Args: cobra.NoArgs,
		RunE: runLogPrune,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Age cutoff (e.g. 30d, 4w, 3m)")
	c.Flags().Bool(extension.FlagDryRun, false, "Count without deleting")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

func runLogPrune(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	before, err := duration.Ago(olderThan, time.Now())
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log prune: %w", err))
	}
	n, err := log.Prune(c.Context(), before, dryRun)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	// Recorded after the prune so it survives it.
	log.Event("core:log", "prune").
		Author(cmd.Author()).
		Detail("older_than", olderThan).
		Detail("count", n).
		Detail("dry_run", dryRun).
		Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"count": n, "dry_run": dryRun})
	}
	switch {
	case n == 0:
		fmt.Fprintln(cmd.Out(), "No log entries to prune")
	case dryRun:
		fmt.Fprintf(cmd.Out(), "Would prune %d log entries\n", n)
	default:
		fmt.Fprintf(cmd.Out(), "Pruned %d log entries\n", n)
	}
	return nil
}

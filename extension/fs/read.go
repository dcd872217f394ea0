// read.go implements the "llmfs read" command.
//
// One path reads a numbered line window, like read_file. Several paths read
// each file in full, like read_many_files, with a header per file.

package fs

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/cat"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/spf13/cobra"
)

func (e *Extension) newReadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "read <path> [path...]",
		Short: "Read workspace files",
		Long: `Print a file with line numbers, or several files in full.

  llmfs read main.go                    # first 2000 lines, numbered
  llmfs read main.go --offset 100 -n 50 # lines 101-150
  llmfs read go.mod go.sum              # both files in full`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRead,
	}
	c.Flags().Int(extension.FlagOffset, 0, "First line to print (0-based)")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Maximum lines to print (default read.limit)")
	c.Flags().Bool(extension.FlagRaw, false, "Omit line numbers")
	return c
}

func (e *Extension) runRead(c *cobra.Command, args []string) error {
	if len(args) > 1 {
		return e.runReadMany(c, args)
	}

	p := args[0]
	offset, _ := c.Flags().GetInt(extension.FlagOffset)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	cfg := e.ctx.Config()
	if limit == 0 {
		limit = cfg.ReadLimit()
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	result, err := cat.Run(c.Context(), w, e.ctx.Workspace(), p, cat.Options{
		Offset:        offset,
		Limit:         limit,
		Raw:           raw,
		MaxLineLength: cfg.MaxLineLength(),
	})

	log.Event("fs:read", "read").
		Author(cmd.Author()).
		Path(p).
		Detail("lines", result.Lines).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read %q: %w", p, err))
	}
	return cmd.PrintJSON(result)
}

func (e *Extension) runReadMany(c *cobra.Command, paths []string) error {
	files, err := cat.RunMany(c.Context(), e.ctx.Workspace(), paths, e.ctx.Config().MaxContent())

	log.Event("fs:read", "read").
		Author(cmd.Author()).
		Detail("paths", paths).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(err)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(files)
	}
	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(cmd.Out())
		}
		fmt.Fprintf(cmd.Out(), "==> %s <==\n%s", f.Path, f.Content)
		if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
			fmt.Fprintln(cmd.Out())
		}
	}
	return nil
}

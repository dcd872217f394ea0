// write.go implements the "llmfs write" command.

package fs

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/write"
	"github.com/spf13/cobra"
)

func (e *Extension) newWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <path> [content]",
		Short: "Create or overwrite a workspace file",
		Long: `Write content to a file inside the workspace, creating parent
directories as needed. Content comes from the second argument or stdin.

  llmfs write notes.md "# Notes"
  echo "hello" | llmfs write greeting.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runWrite,
	}
}

func (e *Extension) runWrite(c *cobra.Command, args []string) error {
	p := args[0]
	content, err := contentArg(c, args, 1)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	result, err := write.Run(c.Context(), w, e.ctx.Workspace(), p, content, write.Options{
		MaxContent: e.ctx.Config().MaxContent(),
	})

	log.Event("fs:write", "write").
		Author(cmd.Author()).
		Path(p).
		Detail("bytes", len(content)).
		Detail("created", result.Created).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("write %q: %w", p, err))
	}
	return cmd.PrintJSON(result)
}

// contentArg returns args[i] when present, otherwise all of stdin.
func contentArg(c *cobra.Command, args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	data, err := io.ReadAll(c.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// sed.go implements "llmfs sed", substitution with sed's s/old/new/ syntax.
// Matching is literal; see replace for the uniqueness-checked form.

package fs

import (
	"fmt"
	"io"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/sed"
	"github.com/spf13/cobra"
)

func (e *Extension) newSedCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sed <expression> <path>",
		Short: "Substitute text with a sed expression",
		Long: `Apply a sed-style substitution to a file in place.

  llmfs sed "s/v1.0.0/v1.1.0/" CHANGELOG.md     # first occurrence
  llmfs sed "s/v1.0.0/v1.1.0/g" CHANGELOG.md    # every occurrence
  llmfs sed "s|src/old|src/new|g" Makefile      # alternate delimiter

Only the s command is supported and matching is literal.`,
		Args: cobra.ExactArgs(2),
		RunE: e.runSed,
	}
	c.Flags().Bool(extension.FlagDryRun, false, "Show the diff without writing")
	return c
}

func (e *Extension) runSed(c *cobra.Command, args []string) error {
	expr, p := args[0], args[1]
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	var w io.Writer = cmd.Out()
	if cmd.JSON() {
		w = nil
	}
	result, err := sed.Run(c.Context(), w, e.ctx.Workspace(), p, expr, sed.Options{DryRun: dryRun})

	log.Event("fs:sed", "edit").
		Author(cmd.Author()).
		Path(p).
		Detail("expr", expr).
		Detail("replacements", result.Replacements).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("sed %q: %w", p, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprint(w, result.Diff)
	return nil
}

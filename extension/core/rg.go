// rg.go implements "llmfs rg", which inspects and provisions the ripgrep
// binary used by grep.
//
// Design: provisioning normally happens implicitly on the first grep.
// "rg install" does it up front (for CI images or offline preparation) and
// shows a spinner because the download can take a while.

package core

import (
	"fmt"

	"github.com/jpl-au/llmfs/cmd"
	"github.com/jpl-au/llmfs/internal/log"
	"github.com/jpl-au/llmfs/internal/progress"
	"github.com/spf13/cobra"
)

func (e *Extension) newRgCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rg",
		Short: "Inspect or provision the ripgrep binary",
		Long: `Inspect or provision the ripgrep (rg) binary used by grep.

  llmfs rg path       # print the rg that grep will run
  llmfs rg install    # download rg now if none is available

Lookup order: rg on PATH (unless ripgrep.system is false), then the cache
directory (ripgrep.cache_dir), then a download of the pinned release
(ripgrep.version) from GitHub.`,
		Args: cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			_ = c.Help()
		},
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the path of the rg binary",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return e.resolveRg(c, false)
			},
		},
		&cobra.Command{
			Use:   "install",
			Short: "Provision rg now",
			Args:  cobra.NoArgs,
			RunE: func(c *cobra.Command, _ []string) error {
				return e.resolveRg(c, true)
			},
		},
	)
	return c
}

func (e *Extension) resolveRg(c *cobra.Command, verbose bool) error {
	rg := e.ctx.Ripgrep()

	spin := progress.NewSpinner("Resolving ripgrep")
	if verbose {
		spin.Start()
	}
	bin, err := rg.Resolve(c.Context())
	spin.Stop()

	log.Event("core:rg", c.Name()).
		Author(cmd.Author()).
		Path(bin.Path).
		Detail("source", string(bin.Source)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("rg %s: %w", c.Name(), err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(bin)
	}
	if !verbose {
		fmt.Fprintln(cmd.Out(), bin.Path)
		return nil
	}
	version := bin.Version
	if version == "" {
		version = "unknown version"
	}
	fmt.Fprintf(cmd.Out(), "ripgrep %s ready at %s (%s)\n", version, bin.Path, bin.Source)
	return nil
}

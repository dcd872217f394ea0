// serve.go implements the "llmfs serve" command for MCP server operation.
//
// Separated from extension.go because serve has unique lifecycle requirements.
// Unlike other commands that run and exit, serve blocks indefinitely handling
// MCP requests over stdio.
//
// Design: the server receives the same Context the CLI commands use, so one
// provisioner serves every grep call for the life of the server.

package core

import (
	"github.com/jpl-au/llmfs/extension"
	"github.com/jpl-au/llmfs/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Every tool is confined to the workspace root:
  llmfs serve                       # current directory
  llmfs serve --root ~/src/project  # explicit root`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(e.ctx, extension.Tools())
		},
	}
}

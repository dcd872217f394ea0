// Package core provides the core extension for llmfs.
// It registers commands: config, serve, guide, llm, log, rg, version.
package core

import (
	"github.com/jpl-au/llmfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Standalone    = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init stores the shared context for rg and serve.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		e.newServeCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newLogCmd(),
		e.newRgCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. Core commands have no MCP tool equivalents.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// StandaloneCommands returns commands that never touch the workspace.
func (e *Extension) StandaloneCommands() []string {
	return []string{"config", "guide", "llm", "version"}
}

// Package fs provides the workspace file primitives: listing, reading,
// writing and editing. Registers commands: ls, read, write, replace, sed, diff.
// Registers MCP tools: list_directory, read_file, read_many_files,
// write_file, replace.
package fs

import (
	"github.com/jpl-au/llmfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the fs extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "fs".
func (e *Extension) Name() string { return "fs" }

// Init stores the shared context for command handlers.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the file commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLsCmd(),
		e.newReadCmd(),
		e.newWriteCmd(),
		e.newReplaceCmd(),
		e.newSedCmd(),
		e.newDiffCmd(),
	}
}

// MCPTools returns the file tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return tools()
}

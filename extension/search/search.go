// Package search provides workspace discovery and content search.
// grep runs ripgrep, scan is an in-process regex scan, glob matches paths.
// Registers commands: grep, scan, glob.
// Registers MCP tools: glob, grep, search_file_content.
package search

import (
	"github.com/jpl-au/llmfs/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init stores the shared context for command handlers.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns grep, scan and glob.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newGrepCmd(),
		e.newScanCmd(),
		e.newGlobCmd(),
	}
}

// MCPTools returns the search tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return tools()
}

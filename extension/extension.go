// Package extension provides the plugin architecture for llmfs. Extensions
// group related tools (CLI commands and MCP tools) and register at init
// time, so a new tool family is added without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for llmfs extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is an optional interface for extensions with commands that
// don't operate on a workspace. Commands returned by StandaloneCommands()
// skip workspace initialisation in PersistentPreRunE, so they work even
// when --root points somewhere unusable.
type Standalone interface {
	StandaloneCommands() []string
}

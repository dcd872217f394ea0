// Package all imports all built-in llmfs extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/llmfs/extension/core"
	_ "github.com/jpl-au/llmfs/extension/fs"
	_ "github.com/jpl-au/llmfs/extension/search"
	_ "github.com/jpl-au/llmfs/extension/shell"
	_ "github.com/jpl-au/llmfs/extension/web"
)

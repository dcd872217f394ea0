// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagAll        = "all"         // Replace every occurrence / every workspace
	FlagDryRun     = "dry-run"     // Preview without making changes
	FlagFailed     = "failed"      // Only failed operations
	FlagHidden     = "hidden"      // Include dot entries
	FlagIgnoreCase = "ignore-case" // Case-insensitive matching
	FlagLocal      = "local"       // Use local scope
	FlagLong       = "long"        // Long format output
	FlagNoColour   = "no-colour"   // Disable coloured diff output
	FlagRaw        = "raw"         // Raw output without line numbers
	FlagReverse    = "reverse"     // Reverse sort order
	FlagTree       = "tree"        // Tree view output

	// String flags

	FlagFormat    = "format"     // Output format for fetched pages
	FlagIgnore    = "ignore"     // Glob patterns to skip
	FlagInclude   = "include"    // Glob filter for files searched
	FlagLines     = "lines"      // Line range specification (e.g., "10:20")
	FlagOlderThan = "older-than" // Age cutoff (e.g., "30d")
	FlagSince     = "since"      // Age window (e.g., "7d")
	FlagSort      = "sort"       // Sort field
	FlagSource    = "source"     // Audit source or prefix (e.g., "mcp:")

	// Integer and duration flags

	FlagDepth   = "depth"   // Tree depth
	FlagLimit   = "limit"   // Limit number of results
	FlagOffset  = "offset"  // Starting line
	FlagTimeout = "timeout" // Time budget
)

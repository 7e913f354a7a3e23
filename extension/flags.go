// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "dry-run" -> FlagDryRun).

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagCount         = "count"          // Output count only
	FlagCreate        = "create"         // Fail instead of replacing an existing document
	FlagDiff          = "diff"           // Show diff output
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagIncludeHidden = "include-hidden" // Include hidden files/directories
	FlagJSONQuery     = "json"           // Print the JSON form of a query
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagRaw           = "raw"            // Raw output without formatting

	// String flags

	FlagFile   = "file"   // Read documents or input from a file
	FlagPrefix = "prefix" // Id prefix

	// String slice flags

	FlagSelect = "select" // Fields to project
	FlagSort   = "sort"   // Sort keys, "field" or "field:desc"

	// Integer flags

	FlagLimit = "limit" // Limit number of results
	FlagSkip  = "skip"  // Skip results before the limit
)

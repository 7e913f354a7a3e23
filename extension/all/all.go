// Package all imports all core docq extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/docq/extension/core"
	_ "github.com/jpl-au/docq/extension/document"
	_ "github.com/jpl-au/docq/extension/query"
)

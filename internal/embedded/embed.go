// Package embedded carries the sheet profiles compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds every bundled profile.
//
//go:embed profiles/*.yaml
var FS embed.FS

// DefaultProfilePath is the path of the default profile inside FS.
const DefaultProfilePath = "profiles/default.yaml"

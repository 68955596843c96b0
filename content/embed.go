// Package content embeds the hand-authored site copy.
package content

import (
	"embed"
	"io/fs"
)

//go:embed site.yaml home.md notfound.md
var files embed.FS

// FS exposes the embedded content files.
func FS() fs.FS {
	return files
}

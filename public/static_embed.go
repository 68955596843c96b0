package public

import (
	"embed"
	"io/fs"
)

//go:embed static/assets static/reports static/css static/js
var static embed.FS

// StaticFS returns the embedded assets rooted at static/, as served under /static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(static, "static")
}

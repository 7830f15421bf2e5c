package presets

import (
	"embed"
	"io/fs"
)

//go:embed *.yaml
var data embed.FS

func FS() fs.FS {
	return &data
}

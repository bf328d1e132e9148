package assets

import (
	"embed"
	"io"
)

//go:embed levels.txt words.txt
var FS embed.FS

// Default files used when no list path is configured.
const (
	LevelsFile = "levels.txt"
	WordsFile  = "words.txt"
)

// Open returns a reader over one of the embedded list files.
func Open(name string) (io.ReadCloser, error) {
	return FS.Open(name)
}

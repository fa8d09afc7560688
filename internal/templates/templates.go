// Package templates holds files embedded into the launch binary.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed config.toml
var files embed.FS

// ReadFunc reads an embedded template. Tests replace it to simulate read failures.
var ReadFunc = func(path string) ([]byte, error) {
	return fs.ReadFile(files, path)
}

// Read returns the embedded template at path.
func Read(path string) ([]byte, error) {
	return ReadFunc(path)
}

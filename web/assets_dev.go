//go:build dev
// +build dev

package web

import (
	"net/http"
	"os"
	"path/filepath"
)

// GetFileSystem serves the web directory straight from disk so edits show
// up without a rebuild
func GetFileSystem() http.FileSystem {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return http.Dir(filepath.Join(wd, "web"))
}

package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/**
var staticFS embed.FS

func subFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Expose the unrooted FS on error.
		return staticFS
	}
	return sub
}

// FS returns an http.FileSystem for the embedded site.
func FS() http.FileSystem {
	return http.FS(subFS())
}

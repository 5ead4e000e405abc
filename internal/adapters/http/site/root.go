// Package site serves the embedded landing page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the landing page routes to mux.
//
//	GET /          -> index.html
//	GET /assets/   -> stylesheets and images
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	root := NewRootHandler()
	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.Handle("GET /assets/", http.FileServer(FS()))
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests and serves the landing page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, subFS(), "index.html")
}

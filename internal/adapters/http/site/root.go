// Package site serves the embedded single-page dashboard.
package site

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// Error constants
var (
	ErrServe = errors.New("site serve failed")
)

// Register attaches the embedded dashboard routes to mux. The root handler
// is the catch-all: any path that is neither a registered route nor an
// embedded asset serves the SPA entry document, and the client-side router
// takes over from there.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler())
}

// RootHandler serves embedded assets with an index.html fallback.
type RootHandler struct {
	fs fs.FS
}

// NewRootHandler creates a new root handler over the embedded site.
func NewRootHandler() *RootHandler {
	return &RootHandler{fs: FS()}
}

// ServeHTTP serves the requested asset if it is embedded, index.html
// otherwise.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if name != "" && name != "." {
		if f, err := h.fs.Open(name); err == nil {
			_ = f.Close()
			http.ServeFileFS(w, r, h.fs, name)
			return
		}
	}
	http.ServeFileFS(w, r, h.fs, "index.html")
}

// Package site serves the embedded calculator page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the calculator page and its assets at the root of mux.
// Unknown paths fall through to the file server and yield 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("/", http.FileServer(FS()))
}

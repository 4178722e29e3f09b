// Package web serves the embedded ticket triage page.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed static
var staticFS embed.FS

// Handler serves the static page and its assets.
func Handler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is compiled in, so this only fails if the embed directive changes
		panic(err)
	}
	return http.FileServerFS(sub)
}

// RegisterRoutes mounts the static page as the catch-all GET route.
func RegisterRoutes(r chi.Router) {
	h := Handler()
	r.Method(http.MethodGet, "/*", h)
	r.Method(http.MethodHead, "/*", h)
}

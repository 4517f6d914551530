package http

import "net/http"

// Handler is a plain handler func, what Get and Head mount
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what a module sees when it mounts, reads only
type Router interface {
	Get(path string, h Handler)
	Head(path string, h Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// NotFound replaces the handler for unmatched paths under this router
	NotFound(h Handler)

	Mux() http.Handler
}

// Package httpkit re-exports the platform http seam for modules
// modules import this instead of internal/platform/net/http directly
package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	phttp "pgnframe/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Response is the return-style handler result
	Response = phttp.Response

	// Page is the pagination block of a list envelope
	Page = phttp.Page

	// Envelope is the JSON wire shape of every response
	Envelope = phttp.Envelope
)

// AdaptChi adapts a chi mux to Router
func AdaptChi(m *chi.Mux) Router { return phttp.AdaptChi(m) }

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// List returns a 200 response with items and an offset page block
func List(items any, total, limit, offset int) Response {
	return phttp.List(items, total, limit, offset)
}

// Get registers a GET handler without input binding
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.Get(r, path, h) }

// GetQuery registers a GET handler bound to validated query parameters
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// NotFound answers unmatched paths under r with a 404 envelope
func NotFound(r Router) { phttp.NotFound(r) }

// Param returns a path parameter such as {id}
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }

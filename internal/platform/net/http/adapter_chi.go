package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter wraps a chi.Router, subrouters handed to Group and Route included
type chiRouter struct{ r chi.Router }

// AdaptChi exposes m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)  { c.r.Get(p, h) }
func (c chiRouter) Head(p string, h Handler) { c.r.Head(p, h) }
func (c chiRouter) NotFound(h Handler)       { c.r.NotFound(h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(g chi.Router) { fn(chiRouter{r: g}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }

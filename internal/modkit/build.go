package modkit

import (
	"net/http"

	"pgnframe/internal/modkit/httpkit"
	"pgnframe/internal/modkit/module"
	pstrings "pgnframe/internal/platform/strings"
)

// Module is what api.Mount registers and mounts
type Module = module.Module

// Option sets one field of Built
type Option func(*Built)

// WithName names the module in the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix is the path the module mounts under, relative to /api/v1
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware that only wraps this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module a port it would otherwise build itself, tests use it for fakes
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Built is the option set a module keeps after New
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order, a later option overrides an earlier one
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount runs register on a subrouter at b.Prefix wrapped in b.Mw
// an empty prefix panics
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	httpkit.MountUnder(r, pstrings.MustPrefix(b.Prefix), b.Mw, register)
}

// Package module wires the games read API using modkit
package module

import (
	"time"

	modkit "pgnframe/internal/modkit"
	"pgnframe/internal/modkit/httpkit"
	str "pgnframe/internal/platform/strings"
	gameshttp "pgnframe/internal/services/api/games/http"
	gamesrepo "pgnframe/internal/services/api/games/repo"
	gamessvc "pgnframe/internal/services/api/games/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc gamessvc.Service
}

// New constructs the games API module over the primary sql seam
// GAMES_QUERY_TIMEOUT (under the API config prefix) bounds each request, 5s by default
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	timeout := deps.Cfg.MayDuration("GAMES_QUERY_TIMEOUT", 5*time.Second)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("games"),
		modkit.WithPrefix("/games"),
		modkit.WithMiddlewares(httpkit.Timeout(timeout)),
	}, opts...)...)

	return &Module{b: b, svc: gamessvc.New(deps.SQL(), gamesrepo.NewSQL())}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { gameshttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.svc }

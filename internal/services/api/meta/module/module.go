// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"time"

	modkit "pgnframe/internal/modkit"
	"pgnframe/internal/modkit/httpkit"
	mmodule "pgnframe/internal/modkit/module"
	str "pgnframe/internal/platform/strings"
	gamesapi "pgnframe/internal/services/api/games/domain"
	gamesdom "pgnframe/internal/services/games/domain"

	metahttp "pgnframe/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	b         modkit.Built
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{deps: deps, b: b, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	d := metahttp.Deps{
		ServiceName: "pgnframe-api",
		StartedAt:   m.startedAt,
		PG:          m.deps.PG,
		CH:          m.deps.CH,
		Lite:        m.deps.Lite,
		LastRun:     lastRun,
		Modules:     mmodule.Names,
	}
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, d) })
}

// lastRun asks the games module, resolved per call so mount order does not matter
func lastRun(ctx context.Context) (gamesdom.Run, bool, error) {
	svc, ok := mmodule.PortsAs[gamesapi.ServicePort]("games")
	if !ok {
		return gamesdom.Run{}, false, nil
	}
	runs, err := svc.Runs(ctx, gamesapi.RunsInput{Limit: 1})
	if err != nil || len(runs) == 0 {
		return gamesdom.Run{}, false, err
	}
	return runs[0], true, nil
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

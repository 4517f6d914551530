// Package api mounts the read API modules
//
// @title pgnframe API
// @version 1.0
// @description Read access to parsed PGN game frames and ingest runs
// @BasePath /api/v1
package api

import (
	"pgnframe/internal/platform/config"
	phttp "pgnframe/internal/platform/net/http"
	"pgnframe/internal/platform/store"

	"pgnframe/internal/modkit"
	"pgnframe/internal/modkit/httpkit"
	"pgnframe/internal/modkit/module"
	"pgnframe/internal/modkit/swaggerkit"

	gamesmod "pgnframe/internal/services/api/games/module"
	metamod "pgnframe/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	EnableSwagger bool
}

// Mount mounts every module under /api/v1 behind the common middleware stack
func Mount(r phttp.Router, opt Options) {
	deps := modkit.FromStore(opt.Config, opt.Store)

	mods := []module.Module{
		metamod.New(deps),
		gamesmod.New(deps),
	}

	httpkit.NotFound(r)
	swaggerkit.Mount(r, opt.EnableSwagger)

	origins := opt.Config.MayCSV("CORS_ORIGINS", nil)
	httpkit.MountAPIV1(r, httpkit.CommonStack(origins), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}

// Command pgnframe-api serves stored games over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/logger"
	phttp "pgnframe/internal/platform/net/http"
	"pgnframe/internal/platform/store"

	"pgnframe/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("API_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// read only: ingest owns the schema
	scfg := store.FromConfig(root)
	scfg.AppName = "pgnframe-api"
	scfg.CH.Enabled = false
	if !scfg.PG.Enabled && !scfg.Lite.Enabled {
		l.Fatal().Msg("set PG_URL or LITE_PATH")
	}

	st, err := store.Open(ctx, scfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads API_PORT)
	srv := phttp.NewServer(root)
	api.Mount(srv.Router(), api.Options{
		Config:        apiCfg,
		Store:         st,
		EnableSwagger: apiCfg.MayBool("ENABLE_SWAGGER", false),
	})

	l.Info().Str("addr", srv.Addr()).Msg("api listening")
	if err := srv.Run(ctx, apiCfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second)); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

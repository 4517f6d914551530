package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pgnframe/internal/core/frame"
	"pgnframe/internal/core/pgn"
	"pgnframe/internal/modkit"
	"pgnframe/internal/modkit/httpkit"
	mmodule "pgnframe/internal/modkit/module"
	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/store"
	"pgnframe/internal/platform/testkit"
	gamesapimod "pgnframe/internal/services/api/games/module"
	metahttp "pgnframe/internal/services/api/meta/http"
	gamesdom "pgnframe/internal/services/games/domain"
	gamessvc "pgnframe/internal/services/games/service"
)

func serve(t *testing.T, mux http.Handler, url string, data any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		t.Fatalf("data: %v", err)
	}
	return rec.Code
}

func TestMeta_HealthAndVersion(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	New(modkit.Deps{}).MountRoutes(httpkit.AdaptChi(mux))

	var h metahttp.HealthResponse
	if code := serve(t, mux, "/meta/health", &h); code != http.StatusOK || !h.OK || h.Service != "pgnframe-api" {
		t.Fatalf("health %d %+v", code, h)
	}
	var v struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	if serve(t, mux, "/meta/version", &v); v.Service != "pgnframe-api" || v.Version == "" {
		t.Fatalf("version %+v", v)
	}
}

func TestMeta_ReadyWithoutBackendsIsDegraded(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	New(modkit.Deps{}).MountRoutes(httpkit.AdaptChi(mux))

	var r metahttp.ReadyResponse
	serve(t, mux, "/meta/ready", &r)
	if r.Status != "degraded" || len(r.Checks) != 3 || r.Checks[0].Status != "skipped" {
		t.Fatalf("ready %+v", r)
	}
}

func TestMeta_ReadyReportsSQLiteAndLastRun(t *testing.T) {
	testkit.Serial(t)
	mmodule.Reset()
	t.Cleanup(mmodule.Reset)

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "meta.db")}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	id := uuid.NewString()
	at := time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	f := frame.MustNew(frame.Games, []pgn.Record{{BlackRating: 1, WhiteRating: 2, TimeControl: "3", Result: pgn.Draw}})
	if _, err := gamessvc.NewSQLiteSink(st.Lite, 0).Write(ctx, gamesdom.Run{ID: id, StartedAt: at, FinishedAt: at}, f); err != nil {
		t.Fatal(err)
	}

	deps := modkit.FromStore(config.New(), st)
	games := gamesapimod.New(deps)
	mmodule.Register(games.Name(), games.Ports())

	mux := chi.NewRouter()
	New(deps).MountRoutes(httpkit.AdaptChi(mux))

	var r metahttp.ReadyResponse
	serve(t, mux, "/meta/ready", &r)
	if r.Status != "ok" || r.Checks[2].Name != "sqlite" || r.Checks[2].Status != "ok" {
		t.Fatalf("ready %+v", r)
	}
	if r.LastRun == nil || r.LastRun.ID != id || r.LastRun.Kept != 0 {
		t.Fatalf("last run %+v", r.LastRun)
	}

	var h metahttp.HealthResponse
	serve(t, mux, "/meta/health", &h)
	if len(h.Modules) != 1 || h.Modules[0] != "games" {
		t.Fatalf("health modules %v", h.Modules)
	}
}

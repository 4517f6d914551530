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
	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/store"
	"pgnframe/internal/platform/testkit"
	"pgnframe/internal/services/api/games/domain"
	gamesdom "pgnframe/internal/services/games/domain"
	gamessvc "pgnframe/internal/services/games/service"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       int             `json:"code"`
	Error      string          `json:"error"`
	Field      string          `json:"field"`
	Data       json.RawMessage `json:"data"`
	Page       *httpkit.Page   `json:"page"`
}

func seeded(t *testing.T) (*chi.Mux, string) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "api.db")}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	id := uuid.NewString()
	at := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
	f := frame.MustNew(frame.Games, []pgn.Record{
		{BlackRating: 1500, WhiteRating: 1600, TimeControl: "300+0", Result: pgn.WhiteWins},
		{BlackRating: 1700, WhiteRating: pgn.NoValue, TimeControl: "60+1", Result: pgn.BlackWins},
		{BlackRating: 1900, WhiteRating: 1800, TimeControl: "600", Result: pgn.WhiteWins},
		{BlackRating: pgn.NoValue, WhiteRating: 1200, TimeControl: pgn.Unknown, Result: pgn.NoValue},
	})
	run := gamesdom.Run{ID: id, Source: "seed.pgn", Compression: "none", Encoding: "utf-8",
		Blocks: 6, Kept: 4, Dropped: 2, StartedAt: at, FinishedAt: at.Add(time.Second)}
	if _, err := gamessvc.NewSQLiteSink(st.Lite, 2).Write(ctx, run, f); err != nil {
		t.Fatalf("seed: %v", err)
	}

	mux := chi.NewRouter()
	m := New(modkit.FromStore(config.New(), st))
	m.MountRoutes(httpkit.AdaptChi(mux))
	return mux, id
}

func get(t *testing.T, mux http.Handler, url string) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v (%s)", url, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestGames_ListFiltersAndPages(t *testing.T) {
	t.Parallel()
	mux, id := seeded(t)

	code, env := get(t, mux, "/games?result=1&limit=1")
	if code != http.StatusOK {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var games []domain.Game
	if err := json.Unmarshal(env.Data, &games); err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].Ord != 0 || games[0].ResultLabel != "1-0" || games[0].RunID != id {
		t.Fatalf("games = %+v", games)
	}
	if env.Page == nil || env.Page.Total != 2 || env.Page.Limit != 1 {
		t.Fatalf("page = %+v", env.Page)
	}

	_, env = get(t, mux, "/games?result=-999&run_id="+id)
	games = nil
	_ = json.Unmarshal(env.Data, &games)
	if len(games) != 1 || games[0].BlackRating != pgn.NoValue || games[0].ResultLabel != pgn.Unknown {
		t.Fatalf("sentinel games = %+v", games)
	}

	_, env = get(t, mux, "/games?offset=3")
	games = nil
	_ = json.Unmarshal(env.Data, &games)
	if len(games) != 1 || games[0].Ord != 3 || env.Page.Total != 4 {
		t.Fatalf("offset games = %+v page = %+v", games, env.Page)
	}
}

func TestGames_ListValidation(t *testing.T) {
	t.Parallel()
	mux, _ := seeded(t)

	for _, url := range []string{"/games?result=2", "/games?limit=5000", "/games?run_id=nope", "/games?offset=-1"} {
		code, env := get(t, mux, url)
		if code != http.StatusBadRequest && code != http.StatusUnprocessableEntity {
			t.Fatalf("%s status = %d", url, code)
		}
		if env.Field == "" {
			t.Fatalf("%s: no field in %+v", url, env)
		}
	}
}

func TestGames_Summary(t *testing.T) {
	t.Parallel()
	mux, id := seeded(t)

	code, env := get(t, mux, "/games/summary?run_id="+id)
	if code != http.StatusOK {
		t.Fatalf("status = %d err = %s", code, env.Error)
	}
	var s domain.Summary
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatal(err)
	}
	if s.Rows != 4 || s.ByResult["1-0"] != 2 || s.ByResult["0-1"] != 1 || s.ByResult[pgn.Unknown] != 1 {
		t.Fatalf("summary = %+v", s)
	}
	if s.White.Count != 3 || s.White.Min != 1200 || s.White.Max != 1800 || s.White.Mean != 1533.33 {
		t.Fatalf("white = %+v", s.White)
	}
	if s.Black.Count != 3 || s.Black.Mean != 1700 {
		t.Fatalf("black = %+v", s.Black)
	}
}

func TestGames_Runs(t *testing.T) {
	t.Parallel()
	mux, id := seeded(t)

	_, env := get(t, mux, "/games/runs")
	var runs []domain.Run
	if err := json.Unmarshal(env.Data, &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].Kept != 4 || !runs[0].StartedAt.Equal(time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("runs = %+v", runs)
	}

	code, _ := get(t, mux, "/games/runs/"+id)
	if code != http.StatusOK {
		t.Fatalf("run status = %d", code)
	}
	code, _ = get(t, mux, "/games/runs/"+uuid.NewString())
	if code != http.StatusNotFound {
		t.Fatalf("missing run status = %d", code)
	}
	code, env = get(t, mux, "/games/runs/not-a-uuid")
	if code != http.StatusUnprocessableEntity || env.Field != "id" {
		t.Fatalf("bad id status = %d env = %+v", code, env)
	}
}

func TestGames_EmptyDatabaseIsNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "empty.db")}})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	mux := chi.NewRouter()
	New(modkit.FromStore(config.New(), st)).MountRoutes(httpkit.AdaptChi(mux))
	if code, _ := get(t, mux, "/games"); code != http.StatusNotFound {
		t.Fatalf("status = %d", code)
	}
}

func TestNew_RequiresSQL(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { New(modkit.Deps{}) })
}

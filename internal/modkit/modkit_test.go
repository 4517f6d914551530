package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"pgnframe/internal/modkit/httpkit"
	"pgnframe/internal/platform/config"
	"pgnframe/internal/platform/store"
	"pgnframe/internal/platform/testkit"
)

type fakeTx struct{ store.TxRunner }

func TestDeps_SQLPrefersPG(t *testing.T) {
	t.Parallel()

	pg, lite := &fakeTx{}, &fakeTx{}
	if (Deps{}).SQL() != nil {
		t.Fatal("empty deps should have no sql seam")
	}
	if (Deps{Lite: lite}).SQL() != lite {
		t.Fatal("want sqlite fallback")
	}
	if (Deps{PG: pg, Lite: lite}).SQL() != pg {
		t.Fatal("want postgres first")
	}

	d := FromStore(config.New(), &store.Store{Lite: lite})
	if d.Lite != lite || d.PG != nil {
		t.Fatalf("FromStore=%+v", d)
	}
	if FromStore(config.New(), nil).SQL() != nil {
		t.Fatal("nil store should give empty deps")
	}
}

func TestBuild_DefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("defaults=%+v", b)
	}

	mw := func(h http.Handler) http.Handler { return h }
	b = Build(WithName("a"), WithPrefix("/a"), WithName("games"), WithPrefix("games"),
		WithMiddlewares(mw), WithMiddlewares(mw), WithPorts(42))
	if b.Name != "games" || b.Prefix != "games" || len(b.Mw) != 2 || b.Ports != 42 {
		t.Fatalf("built=%+v", b)
	}
}

func TestBuilt_MountPrefixAndMiddleware(t *testing.T) {
	t.Parallel()

	var hits []string
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	b := Build(WithPrefix("games/"), WithMiddlewares(tag))

	mux := chi.NewRouter()
	b.Mount(httpkit.AdaptChi(mux), func(r httpkit.Router) {
		httpkit.Get(r, "/", func(*http.Request) (any, error) { return "root", nil })
		httpkit.Get(r, "/summary", func(*http.Request) (any, error) { return "s", nil })
	})
	mux.Get("/outside", func(w http.ResponseWriter, _ *http.Request) {})

	for _, p := range []string{"/games/", "/games/summary", "/outside"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status=%d", p, rec.Code)
		}
	}
	if len(hits) != 2 {
		t.Fatalf("middleware hits=%v", hits)
	}
	testkit.MustPanic(t, func() { Build().Mount(httpkit.AdaptChi(chi.NewRouter()), func(httpkit.Router) {}) })
}

package http

import (
	"context"
	"encoding/json"
	"net"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pgnframe/internal/platform/config"
	perr "pgnframe/internal/platform/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

type listQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=10"`
}

func testRouter() stdhttp.Handler {
	m := chi.NewRouter()
	m.Use(chimw.RequestID)
	r := AdaptChi(m)
	NotFound(r)
	r.Route("/api", func(api Router) {
		Get(api, "/ok", func(*stdhttp.Request) (any, error) { return map[string]int{"n": 1}, nil })
		Get(api, "/missing", func(*stdhttp.Request) (any, error) { return nil, perr.NotFoundf("no such run") })
		Get(api, "/empty", func(*stdhttp.Request) (any, error) { return NoContent(), nil })
		GetQuery(api, "/list", func(_ *stdhttp.Request, q listQuery) (any, error) {
			return List([]int{1, 2}, 7, q.Limit, 2), nil
		})
		api.Group(func(g Router) {
			g.Use(func(next stdhttp.Handler) stdhttp.Handler {
				return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
					w.Header().Set("X-Group", "1")
					next.ServeHTTP(w, r)
				})
			})
			g.Head("/head", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusOK) })
		})
	})
	return r.Mux()
}

func do(h stdhttp.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestEnvelope_OK(t *testing.T) {
	t.Parallel()

	rec := do(testRouter(), stdhttp.MethodGet, "/api/ok", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type=%q", ct)
	}
	env := decode(t, rec)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID == "" || env.Page != nil {
		t.Fatalf("env=%+v", env)
	}
}

func TestEnvelope_ErrorMapsStatus(t *testing.T) {
	t.Parallel()

	rec := do(testRouter(), stdhttp.MethodGet, "/api/missing", "")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
	env := decode(t, rec)
	if env.Code != perr.ErrorCodeNotFound || env.Error != "no such run" || env.Data != nil {
		t.Fatalf("env=%+v", env)
	}
}

func TestEnvelope_NoContent(t *testing.T) {
	t.Parallel()

	rec := do(testRouter(), stdhttp.MethodGet, "/api/empty", "")
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestGetQuery_ListAndValidation(t *testing.T) {
	t.Parallel()
	h := testRouter()

	rec := do(h, stdhttp.MethodGet, "/api/list?limit=5", "")
	env := decode(t, rec)
	if env.Page == nil || env.Page.Total != 7 || env.Page.Limit != 5 || env.Page.Offset != 2 {
		t.Fatalf("page=%+v", env.Page)
	}

	rec = do(h, stdhttp.MethodGet, "/api/list?limit=50", "")
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	env = decode(t, rec)
	if env.Field != "limit" || env.Code != perr.ErrorCodeValidation {
		t.Fatalf("env=%+v", env)
	}
}

func TestNotFound_Envelope(t *testing.T) {
	t.Parallel()
	h := testRouter()

	for _, target := range []string{"/nope", "/api/nope"} {
		rec := do(h, stdhttp.MethodGet, target, "")
		if rec.Code != stdhttp.StatusNotFound {
			t.Fatalf("%s: status=%d", target, rec.Code)
		}
		env := decode(t, rec)
		if env.Code != perr.ErrorCodeNotFound || !strings.Contains(env.Error, target) {
			t.Fatalf("%s: env=%+v", target, env)
		}
	}
}

func TestAdaptChi_GroupMiddleware(t *testing.T) {
	t.Parallel()

	rec := do(testRouter(), stdhttp.MethodHead, "/api/head", "")
	if rec.Code != stdhttp.StatusOK || rec.Header().Get("X-Group") != "1" {
		t.Fatalf("status=%d header=%q", rec.Code, rec.Header().Get("X-Group"))
	}
}

func TestResponse_CustomHeader(t *testing.T) {
	t.Parallel()

	h := Handle(func(*stdhttp.Request) Response {
		return Response{Status: stdhttp.StatusAccepted, Body: "queued", Header: stdhttp.Header{"X-Run": {"abc"}}}
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil))
	if rec.Code != stdhttp.StatusAccepted || rec.Header().Get("X-Run") != "abc" {
		t.Fatalf("status=%d header=%v", rec.Code, rec.Header())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	t.Setenv("API_PORT", strconv.Itoa(port))
	s := NewServer(config.New())
	if !strings.HasSuffix(s.Addr(), ":"+strconv.Itoa(port)) {
		t.Fatalf("addr=%q", s.Addr())
	}
	Get(s.Router(), "/ping", func(*stdhttp.Request) (any, error) { return "pong", nil })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, time.Second) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/ping"
	var resp *stdhttp.Response
	for i := 0; i < 50; i++ {
		resp, err = stdhttp.Get(url)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"pgnframe/internal/core/version"
	"pgnframe/internal/modkit/httpkit"
	gamesdom "pgnframe/internal/services/games/domain"
)

// Pinger is satisfied by store seams that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// LastRun returns the newest ingest run, ok is false when there is none
type LastRun func(stdctx.Context) (gamesdom.Run, bool, error)

// Deps are the handler dependencies, nil backends are reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Lite        any
	LastRun     LastRun
	Modules     func() []string
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool     `json:"ok"`
	Service string   `json:"service"`
	Started string   `json:"started"`
	Uptime  int64    `json:"uptime"`
	Modules []string `json:"modules,omitempty"`
	Now     string   `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok fail skipped unknown
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status  string        `json:"status"` // ok degraded fail
	Checks  []ReadyCheck  `json:"checks"`
	LastRun *gamesdom.Run `json:"last_run,omitempty"`
	Now     string        `json:"now"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.now()
	resp := HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.UTC().Format(time.RFC3339),
	}
	if h.deps.Modules != nil {
		resp.Modules = h.deps.Modules()
	}
	return resp, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with backend checks and the last run
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if p, ok := c.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
			}
			return ReadyCheck{Name: name, Status: "ok"}
		}
		return ReadyCheck{Name: name, Status: "unknown"}
	}

	resp := ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{
			check("pg", h.deps.PG),
			check("ch", h.deps.CH),
			check("sqlite", h.deps.Lite),
		},
	}

	enabled := 0
	for _, c := range resp.Checks {
		switch c.Status {
		case "fail":
			resp.Status = "fail"
		case "unknown":
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		case "ok":
			enabled++
		}
	}
	if enabled == 0 && resp.Status == "ok" {
		resp.Status = "degraded"
	}

	if h.deps.LastRun != nil && resp.Status != "fail" {
		if run, ok, err := h.deps.LastRun(ctx); err == nil && ok {
			resp.LastRun = &run
		}
	}

	resp.Now = h.now().UTC().Format(time.RFC3339)
	return resp, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}

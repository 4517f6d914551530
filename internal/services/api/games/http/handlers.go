// Package http provides http transport for the games read API
package http

import (
	stdhttp "net/http"

	"pgnframe/internal/modkit/httpkit"
	"pgnframe/internal/services/api/games/domain"
	svc "pgnframe/internal/services/api/games/service"
)

// Register mounts games endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.ListInput](r, "/", h.list)
	httpkit.GetQuery[domain.SummaryInput](r, "/summary", h.summary)
	httpkit.GetQuery[domain.RunsInput](r, "/runs", h.runs)
	httpkit.Get(r, "/runs/{id}", h.run)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /games Games gamesList
// @Summary Page through the parsed games of a run
// @Tags Games
// @Produce json
// @Param run_id query string false "Run id"
// @Param result query int false "Result code, one of 1 -1 0 -999"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} httpkit.Envelope{data=[]domain.Game} "ok"
// @Router /games [get]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	items, total, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit == 0 {
		limit = domain.DefaultLimit
	}
	return httpkit.List(items, total, limit, in.Offset), nil
}

// swagger:route GET /games/summary Games gamesSummary
// @Summary Frame summary of a run
// @Tags Games
// @Produce json
// @Param run_id query string false "Run id, all runs when empty"
// @Success 200 {object} domain.Summary "ok"
// @Router /games/summary [get]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// swagger:route GET /games/runs Games gamesRuns
// @Summary Recent ingest runs
// @Tags Games
// @Produce json
// @Param limit query int false "Max runs"
// @Success 200 {array} domain.Run "ok"
// @Router /games/runs [get]
func (h *handlers) runs(r *stdhttp.Request, in domain.RunsInput) (any, error) {
	return h.svc.Runs(r.Context(), in)
}

// swagger:route GET /games/runs/{id} Games gamesRun
// @Summary One ingest run
// @Tags Games
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} domain.Run "ok"
// @Failure 404 {object} httpkit.Envelope "unknown run"
// @Router /games/runs/{id} [get]
func (h *handlers) run(r *stdhttp.Request) (any, error) {
	return h.svc.Run(r.Context(), httpkit.Param(r, "id"))
}

// Package service contains the games read workflows
package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	"pgnframe/internal/core/frame"
	"pgnframe/internal/core/pgn"
	"pgnframe/internal/modkit/repokit"
	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/services/api/games/domain"
	"pgnframe/internal/services/api/games/repo"
)

// Service defines the service contract for the games API
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	Repo repo.Repo
}

// New creates a games read service over db
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("games api service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("games api service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db)}
}

// List returns one page of records and the total matching count
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Game, int, error) {
	limit := in.Limit
	if limit == 0 {
		limit = domain.DefaultLimit
	}
	f := repo.Filter{RunID: in.RunID, Result: in.Result}

	total, err := s.Repo.CountGames(ctx, f)
	if err != nil {
		return nil, 0, perr.FromDB(err, "count games")
	}
	items, err := s.Repo.ListGames(ctx, f, limit, in.Offset)
	if err != nil {
		return nil, 0, perr.FromDB(err, "list games")
	}
	if items == nil {
		items = []domain.Game{}
	}
	return items, total, nil
}

// Summary counts results and summarises ratings
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (domain.Summary, error) {
	counts, err := s.Repo.ResultCounts(ctx, in.RunID)
	if err != nil {
		return domain.Summary{}, perr.FromDB(err, "result counts")
	}
	out := domain.Summary{ByResult: make(map[string]int, len(counts))}
	for code, n := range counts {
		out.ByResult[pgn.ResultLabel(code)] += n
		out.Rows += n
	}

	if out.White, err = s.ratings(ctx, in.RunID, frame.ColWhiteRating); err != nil {
		return domain.Summary{}, err
	}
	if out.Black, err = s.ratings(ctx, in.RunID, frame.ColBlackRating); err != nil {
		return domain.Summary{}, err
	}
	return out, nil
}

func (s *Svc) ratings(ctx context.Context, runID, col string) (frame.RatingStats, error) {
	st, err := s.Repo.Ratings(ctx, runID, col)
	if err != nil {
		return frame.RatingStats{}, perr.FromDB(err, col+" stats")
	}
	st.Mean = math.Round(st.Mean*100) / 100
	return st, nil
}

// Runs lists recent runs, newest first
func (s *Svc) Runs(ctx context.Context, in domain.RunsInput) ([]domain.Run, error) {
	limit := in.Limit
	if limit == 0 {
		limit = domain.DefaultRunsLimit
	}
	out, err := s.Repo.Runs(ctx, limit)
	if err != nil {
		return nil, perr.FromDB(err, "list runs")
	}
	if out == nil {
		out = []domain.Run{}
	}
	return out, nil
}

// Run fetches one run by id
func (s *Svc) Run(ctx context.Context, id string) (domain.Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Run{}, perr.WithField(perr.InvalidArgf("run id %q is not a uuid", id), "id")
	}
	r, err := s.Repo.Run(ctx, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Run{}, perr.NotFoundf("run %s not found", id)
		}
		return domain.Run{}, perr.FromDB(err, "get run")
	}
	return r, nil
}

// Package repo reads stored games, the SQL runs on postgres and sqlite alike
package repo

import (
	"context"
	"fmt"
	"strings"

	"pgnframe/internal/core/frame"
	"pgnframe/internal/core/pgn"
	"pgnframe/internal/modkit/repokit"
	"pgnframe/internal/platform/store"
	"pgnframe/internal/services/api/games/domain"
)

// Repo is the read surface of the games API
type Repo interface {
	ListGames(ctx context.Context, f Filter, limit, offset int) ([]domain.Game, error)
	CountGames(ctx context.Context, f Filter) (int, error)
	ResultCounts(ctx context.Context, runID string) (map[int]int, error)
	Ratings(ctx context.Context, runID, column string) (frame.RatingStats, error)
	Runs(ctx context.Context, limit int) ([]domain.Run, error)
	Run(ctx context.Context, id string) (domain.Run, error)
}

// Filter narrows game queries
type Filter struct {
	RunID  string
	Result *int
}

type (
	sqlRepo struct{ q repokit.Queryer }
	binder  struct{}
)

// NewSQL constructs a binder usable with either relational seam
func NewSQL() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &sqlRepo{q: q} }

// args collects positional parameters as $N
type args []any

func (a *args) add(v any) string {
	*a = append(*a, v)
	return fmt.Sprintf("$%d", len(*a))
}

func (f Filter) where(a *args) string {
	var conds []string
	if f.RunID != "" {
		conds = append(conds, "run_id = "+a.add(f.RunID))
	}
	if f.Result != nil {
		conds = append(conds, "result = "+a.add(*f.Result))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// ListGames implements Repo
func (s *sqlRepo) ListGames(ctx context.Context, f Filter, limit, offset int) ([]domain.Game, error) {
	var a args
	sql := `SELECT CAST(run_id AS TEXT), ord,
			COALESCE(black_rating, -999), COALESCE(white_rating, -999),
			time_control, result
		FROM game_records` + f.where(&a) +
		` ORDER BY run_id, ord LIMIT ` + a.add(limit) + ` OFFSET ` + a.add(offset)

	return store.Many(ctx, s.q, func(r store.Row) (domain.Game, error) {
		var g domain.Game
		err := r.Scan(&g.RunID, &g.Ord, &g.BlackRating, &g.WhiteRating, &g.TimeControl, &g.Result)
		g.ResultLabel = pgn.ResultLabel(g.Result)
		return g, err
	}, sql, a...)
}

// CountGames implements Repo
func (s *sqlRepo) CountGames(ctx context.Context, f Filter) (int, error) {
	var a args
	n, err := store.Scalar[int64](ctx, s.q, `SELECT count(*) FROM game_records`+f.where(&a), a...)
	return int(n), err
}

// ResultCounts implements Repo
func (s *sqlRepo) ResultCounts(ctx context.Context, runID string) (map[int]int, error) {
	var a args
	type pair struct{ result, n int }
	rows, err := store.Many(ctx, s.q, func(r store.Row) (pair, error) {
		var p pair
		return p, r.Scan(&p.result, &p.n)
	}, `SELECT result, count(*) FROM game_records`+Filter{RunID: runID}.where(&a)+` GROUP BY result`, a...)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(rows))
	for _, p := range rows {
		out[p.result] = p.n
	}
	return out, nil
}

// Ratings implements Repo, the sentinel is left out like frame.Summary does
func (s *sqlRepo) Ratings(ctx context.Context, runID, column string) (frame.RatingStats, error) {
	if column != frame.ColBlackRating && column != frame.ColWhiteRating {
		return frame.RatingStats{}, fmt.Errorf("not a rating column: %q", column)
	}
	var a args
	sql := `SELECT count(` + column + `),
			COALESCE(min(` + column + `), 0),
			COALESCE(max(` + column + `), 0),
			COALESCE(CAST(avg(` + column + `) AS DOUBLE PRECISION), 0)
		FROM game_records
		WHERE ` + column + ` IS NOT NULL AND ` + column + ` <> ` + a.add(pgn.NoValue)
	if runID != "" {
		sql += ` AND run_id = ` + a.add(runID)
	}

	var st frame.RatingStats
	err := s.q.QueryRow(ctx, sql, a...).Scan(&st.Count, &st.Min, &st.Max, &st.Mean)
	return st, err
}

const runCols = `CAST(id AS TEXT), source, compression, encoding, bytes,
	blocks, kept, dropped, started_at, finished_at`

func scanRun(r store.Row) (domain.Run, error) {
	var x domain.Run
	err := r.Scan(&x.ID, &x.Source, &x.Compression, &x.Encoding, &x.Bytes,
		&x.Blocks, &x.Kept, &x.Dropped, &x.StartedAt, &x.FinishedAt)
	return x, err
}

// Runs implements Repo
func (s *sqlRepo) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	return store.Many(ctx, s.q, scanRun,
		`SELECT `+runCols+` FROM game_runs ORDER BY started_at DESC, id LIMIT $1`, limit)
}

// Run implements Repo
func (s *sqlRepo) Run(ctx context.Context, id string) (domain.Run, error) {
	return store.One(ctx, s.q, scanRun, `SELECT `+runCols+` FROM game_runs WHERE id = $1`, id)
}

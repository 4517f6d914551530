package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pgnframe/internal/core/pgn"
	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/store"
	"pgnframe/internal/services/games/domain"
)

const chRecordsDDL = `CREATE TABLE IF NOT EXISTS game_records (
	run_id       UUID,
	ord          UInt32,
	black_rating Nullable(Int32),
	white_rating Nullable(Int32),
	time_control LowCardinality(String),
	result       Int16,
	ingested_at  DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (run_id, ord)`

// CH writes game records to clickhouse with native batch inserts
type CH struct {
	c store.Clickhouse
}

// NewCH wraps a clickhouse seam
func NewCH(c store.Clickhouse) *CH {
	if c == nil {
		panic("games repo: nil clickhouse")
	}
	return &CH{c: c}
}

// EnsureSchema creates the records table
func (w *CH) EnsureSchema(ctx context.Context) error {
	return w.c.Exec(ctx, chRecordsDDL)
}

// InsertRecords sends xs as one batch with ordinals starting at offset
func (w *CH) InsertRecords(ctx context.Context, run domain.Run, offset int, xs []pgn.Record) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("run id %q is not a uuid", run.ID), "run_id")
	}
	at := run.FinishedAt.UTC().Truncate(time.Millisecond)

	rows := make([][]any, len(xs))
	for i, r := range xs {
		rows[i] = []any{
			id,
			uint32(offset + i),
			int32(r.BlackRating),
			int32(r.WhiteRating),
			r.TimeControl,
			int16(r.Result),
			at,
		}
	}
	if err := w.c.Insert(ctx, "game_records", rows); err != nil {
		return 0, err
	}
	return len(xs), nil
}

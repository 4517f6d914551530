// Package repo stores ingested games in postgres, sqlite and clickhouse
package repo

import (
	"context"
	"fmt"
	"strings"

	"pgnframe/internal/core/pgn"
	"pgnframe/internal/modkit/repokit"
	"pgnframe/internal/services/games/domain"
)

// Storage is the relational write surface of the games service
type Storage interface {
	EnsureSchema(ctx context.Context) error
	InsertRun(ctx context.Context, run domain.Run) error
	// InsertRecords writes xs with ordinals starting at offset
	InsertRecords(ctx context.Context, runID string, offset int, xs []pgn.Record) (int, error)
}

// MaxBatch bounds rows per INSERT so a statement stays under both drivers' parameter limits
const MaxBatch = 5000

const recordCols = 6

type dialect struct {
	name string
	ddl  []string
}

var postgres = dialect{
	name: "pg",
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS game_runs (
			id          UUID PRIMARY KEY,
			source      TEXT NOT NULL,
			compression TEXT NOT NULL,
			encoding    TEXT NOT NULL,
			bytes       BIGINT NOT NULL,
			blocks      INTEGER NOT NULL,
			kept        INTEGER NOT NULL,
			dropped     INTEGER NOT NULL,
			started_at  TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS game_records (
			run_id       UUID NOT NULL REFERENCES game_runs (id) ON DELETE CASCADE,
			ord          INTEGER NOT NULL,
			black_rating INTEGER,
			white_rating INTEGER,
			time_control TEXT NOT NULL,
			result       SMALLINT NOT NULL,
			PRIMARY KEY (run_id, ord)
		)`,
		`CREATE INDEX IF NOT EXISTS game_records_result_idx ON game_records (result)`,
		`CREATE INDEX IF NOT EXISTS game_runs_started_idx ON game_runs (started_at DESC)`,
	},
}

// sqlite keeps ids as text and times as TIMESTAMP so the driver parses them back
var sqlite = dialect{
	name: "sqlite",
	ddl: []string{
		`CREATE TABLE IF NOT EXISTS game_runs (
			id          TEXT PRIMARY KEY,
			source      TEXT NOT NULL,
			compression TEXT NOT NULL,
			encoding    TEXT NOT NULL,
			bytes       INTEGER NOT NULL,
			blocks      INTEGER NOT NULL,
			kept        INTEGER NOT NULL,
			dropped     INTEGER NOT NULL,
			started_at  TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS game_records (
			run_id       TEXT NOT NULL REFERENCES game_runs (id) ON DELETE CASCADE,
			ord          INTEGER NOT NULL,
			black_rating INTEGER,
			white_rating INTEGER,
			time_control TEXT NOT NULL,
			result       INTEGER NOT NULL,
			PRIMARY KEY (run_id, ord)
		)`,
		`CREATE INDEX IF NOT EXISTS game_records_result_idx ON game_records (result)`,
		`CREATE INDEX IF NOT EXISTS game_runs_started_idx ON game_runs (started_at DESC)`,
	},
}

type (
	sqlRepo struct {
		q repokit.Queryer
		d dialect
	}
	binder struct{ d dialect }
)

// NewPG constructs a repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{d: postgres} }

// NewSQLite constructs a repo binder for the embedded sqlite file
func NewSQLite() repokit.Binder[Storage] { return binder{d: sqlite} }

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q, d: b.d} }

// EnsureSchema implements Storage
func (s *sqlRepo) EnsureSchema(ctx context.Context) error {
	for _, stmt := range s.d.ddl {
		if _, err := s.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s schema: %w", s.d.name, err)
		}
	}
	return nil
}

// InsertRun implements Storage
func (s *sqlRepo) InsertRun(ctx context.Context, r domain.Run) error {
	_, err := s.q.Exec(ctx, `INSERT INTO game_runs
		(id, source, compression, encoding, bytes, blocks, kept, dropped, started_at, finished_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		r.ID, r.Source, r.Compression, r.Encoding, r.Bytes,
		r.Blocks, r.Kept, r.Dropped, r.StartedAt.UTC(), r.FinishedAt.UTC(),
	)
	return err
}

// InsertRecords implements Storage
func (s *sqlRepo) InsertRecords(ctx context.Context, runID string, offset int, xs []pgn.Record) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}
	if len(xs) > MaxBatch {
		return 0, fmt.Errorf("batch of %d rows exceeds %d", len(xs), MaxBatch)
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO game_records
		(run_id, ord, black_rating, white_rating, time_control, result) VALUES `)

	args := make([]any, 0, len(xs)*recordCols)
	for i, r := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*recordCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5)
		args = append(args, runID, offset+i, r.BlackRating, r.WhiteRating, r.TimeControl, r.Result)
	}

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"
	"fmt"

	"pgnframe/internal/platform/logger"
)

// Store holds the backends this process opened, a disabled backend stays nil
// The zero value opens nothing and closes cleanly
type Store struct {
	// Log is handed to tracers and openers, see WithLogger
	Log logger.Logger

	PG   TxRunner   // postgres pool
	CH   Clickhouse // clickhouse connection
	Lite TxRunner   // sqlite file
}

// Row is one scanned row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set, pgx rows and database/sql rows both fit behind it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements with $N placeholders on either sql backend
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open a transaction
// fn's error rolls back, a nil return commits
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse covers what the games sink and readiness need from clickhouse
type Clickhouse interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Insert(ctx context.Context, table string, data any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger answers readiness checks
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		pgClient, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgClient
	}

	if cfg.CH.Enabled {
		chClient, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = chClient
	}

	if cfg.Lite.Enabled {
		liteClient, err := openLite(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Lite = liteClient
	}

	return s, nil
}

// Guard pings every open backend and joins the failures, each prefixed with its name
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	ping := func(name string, seam any) {
		p, ok := seam.(Pinger)
		if !ok {
			return
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if s.PG != nil {
		ping("pg", s.PG)
	}
	if s.CH != nil {
		ping("ch", s.CH)
	}
	if s.Lite != nil {
		ping("sqlite", s.Lite)
	}
	return errors.Join(errs...)
}

// Close closes whatever Open opened
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for _, seam := range []any{s.Lite, s.PG, s.CH} {
		if c, ok := seam.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

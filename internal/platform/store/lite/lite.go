// Package lite opens a single file sqlite database through modernc.org/sqlite
package lite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"pgnframe/internal/platform/store/sqltrace"
)

// Config configures the database file
type Config struct {
	Path          string
	BusyTimeoutMs int // default 5000
	SlowMs        int
}

// Lite is a database/sql handle plus the optional statement tracer
type Lite struct {
	DB     *sql.DB
	Tracer sqltrace.QueryTracer
	SlowMs int
}

// DSN builds the modernc connection string with WAL and a busy timeout
func DSN(cfg Config) (string, error) {
	p := strings.TrimSpace(cfg.Path)
	if p == "" {
		return "", errors.New("lite: empty path")
	}
	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy))
	q.Add("_pragma", "foreign_keys(1)")
	if p != ":memory:" {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + p + "?" + q.Encode(), nil
}

// Open opens and pings the database
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer) (*Lite, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one writer keeps WAL happy and makes :memory: a single database
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lite: open %s: %w", cfg.Path, err)
	}
	return &Lite{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}

package store

import (
	"context"
	"fmt"
	"time"

	chx "pgnframe/internal/platform/store/ch"
	"pgnframe/internal/platform/store/lite"
	"pgnframe/internal/platform/store/pg"
	"pgnframe/internal/platform/store/sqltrace"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG opens the pool and pings it with backoff before publishing the adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqltrace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = sqltrace.Tracer(s.Log, "pg")
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	if err := waitReady(ctx, s, "postgres", cfg.PG.ConnectRetries, cfg.PG.PingTimeout, p.Pool.Ping); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// waitReady pings until the backend answers, attempts run out or ctx ends
// no sleep follows the last attempt
func waitReady(ctx context.Context, s *Store, name string, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(toCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		s.Log.Debug().Str("backend", name).Int("attempt", i+1).Err(lastErr).Msg(name + " not ready")
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("%s ping failed after %d attempts: %w", name, attempts, lastErr)
}

// openCH pings after the lazy dial so a bad CH_URL fails at open
func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.AppName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, s, "clickhouse", cfg.CH.ConnectRetries, cfg.CH.PingTimeout, c.Ping); err != nil {
		_ = c.Close()
		return nil, err
	}
	return newCHAdapter(c), nil
}

func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer sqltrace.QueryTracer
	if cfg.Lite.LogSQL {
		tracer = sqltrace.Tracer(s.Log, "sqlite")
	}
	l, err := lite.Open(ctx, lite.Config{Path: cfg.Lite.Path, SlowMs: cfg.PG.SlowQueryMs}, tracer)
	if err != nil {
		return nil, err
	}
	return newLiteAdapter(l), nil
}

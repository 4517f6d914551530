package pg

import (
	"context"
	"errors"
	"testing"

	"pgnframe/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db?sslmode=disable"}, nil, nil)
	if err == nil {
		t.Fatalf("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{}
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})

	called := false
	cfg := Config{URL: "postgres://u:p@h:5432/db?sslmode=disable", AppName: "pgnframe-ingest", MaxConns: 7, SlowMs: 250}
	p, err := Open(context.Background(), cfg, nil, func(*pgxpool.Config) { called = true })
	if err != nil {
		t.Fatal(err)
	}
	if !called || seen.MaxConns != 7 {
		t.Fatalf("mutator=%v maxconns=%d", called, seen.MaxConns)
	}
	if seen.ConnConfig.RuntimeParams["application_name"] != "pgnframe-ingest" {
		t.Fatalf("application_name = %q", seen.ConnConfig.RuntimeParams["application_name"])
	}
	if p.Pool != fake || p.SlowMs != 250 {
		t.Fatalf("PG = %+v", p)
	}

	var nilPG *PG
	nilPG.Close()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"pgnframe/internal/platform/store/lite"
)

// liteAdapter wraps lite.Lite and implements RowQuerier + TxRunner
type liteAdapter struct {
	l *lite.Lite
}

func newLiteAdapter(l *lite.Lite) *liteAdapter { return &liteAdapter{l: l} }

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("lite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.l, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.l, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.l, q, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteTx{tx: tx, l: a.l}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the part of *sql.DB and *sql.Tx the adapter uses
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c sqlConn, l *lite.Lite, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	emit(ctx, l.Tracer, l.SlowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return liteTag{n: n}, nil
}

func liteQuery(ctx context.Context, c sqlConn, l *lite.Lite, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	emit(ctx, l.Tracer, l.SlowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return &liteRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c sqlConn, l *lite.Lite, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	return liteRow{
		r: r,
		after: func(scanErr error) {
			emit(ctx, l.Tracer, l.SlowMs, q, args, start, scanErr)
		},
	}
}

type liteTx struct {
	tx *sql.Tx
	l  *lite.Lite
}

func (t liteTx) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.l, q, args)
}

func (t liteTx) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.l, q, args)
}

func (t liteTx) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.l, q, args)
}

type liteRow struct {
	r     *sql.Row
	after func(error)
}

func (x liteRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type liteRows struct{ r *sql.Rows }

func (x *liteRows) Next() bool            { return x.r.Next() }
func (x *liteRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x *liteRows) Err() error            { return x.r.Err() }
func (x *liteRows) Close()                { _ = x.r.Close() }
func (x *liteRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// liteTag mimics the pg "VERB n" tag shape with just the count
type liteTag struct{ n int64 }

func (t liteTag) String() string      { return strconv.FormatInt(t.n, 10) }
func (t liteTag) RowsAffected() int64 { return t.n }

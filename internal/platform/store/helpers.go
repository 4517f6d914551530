package store

import (
	"context"

	perr "pgnframe/internal/platform/errors"
)

// Scalar scans the single column of the first row into a T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// One maps exactly one row, no rows is perr.ErrNotFound and more than one is a DB error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	xs, err := collect(ctx, q, scan, 2, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(xs) == 0:
		return zero, perr.ErrNotFound
	case len(xs) > 1:
		return zero, perr.DBf("expected one row, query returned more")
	}
	return xs[0], nil
}

// Many maps every row, an empty result is an empty non nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, 0, sql, args...)
}

// collect stops after max rows when max > 0
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), max int, sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		x, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out, rows.Err()
}

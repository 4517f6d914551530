// Package repokit holds the types repos are written against so they never import a driver
package repokit

import (
	"context"
	"fmt"

	"pgnframe/internal/platform/store"
)

type (
	// Queryer is a pool or an open transaction
	Queryer = store.RowQuerier

	// TxRunner opens transactions, postgres and sqlite both implement it
	TxRunner = store.TxRunner

	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder turns a Queryer into a repo, so one repo type serves both a pool and a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q, panicking when q is nil so a missing backend fails at wiring time
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic(fmt.Sprintf("repokit: bind %T to a nil Queryer", b))
	}
	return b.Bind(q)
}

// WithTx runs fn in one transaction, at most three attempts on transient failures
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return store.RunInTx(ctx, tx, 3, fn)
}

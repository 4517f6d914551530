package store

import (
	"context"
	"time"

	perr "pgnframe/internal/platform/errors"
)

// RunInTx runs fn inside one transaction on q
// A transient failure (serialization, deadlock, sqlite busy) reruns the whole
// transaction up to attempts times with a short linear backoff
func RunInTx(ctx context.Context, q TxRunner, attempts int, fn func(q RowQuerier) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = q.Tx(ctx, fn)
		if err == nil || !perr.Retryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 50 * time.Millisecond):
		}
	}
	return err
}

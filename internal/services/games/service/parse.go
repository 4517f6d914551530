package service

import (
	"context"
	"sync"

	"pgnframe/internal/core/pgn"
)

// chunk is the number of consecutive blocks one worker parses per slot
const chunk = 256

// parseAll parses blocks on up to workers goroutines
// out[i] always belongs to blocks[i], and no new chunk starts once ctx is done
func parseAll(ctx context.Context, blocks []string, workers int) ([]pgn.Record, error) {
	return parseWith(ctx, blocks, workers, pgn.Parse)
}

func parseWith(ctx context.Context, blocks []string, workers int, parse func(string) pgn.Record) ([]pgn.Record, error) {
	if workers <= 0 {
		workers = 1
	}
	out := make([]pgn.Record, len(blocks))

	sem := make(chan struct{}, workers)
	wg := sync.WaitGroup{}

	for lo := 0; lo < len(blocks); lo += chunk {
		hi := min(lo+chunk, len(blocks))

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		}
		if err := ctx.Err(); err != nil {
			<-sem
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer func() { <-sem; wg.Done() }()
			for i := lo; i < hi; i++ {
				out[i] = parse(blocks[i])
			}
		}(lo, hi)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

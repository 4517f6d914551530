// Package sqltrace logs SQL statements issued through the store adapters
package sqltrace

import (
	"context"

	"github.com/rs/zerolog"

	"pgnframe/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives statement events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a tracer that prints every statement for backend
// It ignores the root level so PG_LOG_SQL works with LOG_LEVEL=warn
func Tracer(root logger.Logger, backend string) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", backend).Logger()
	return &zlTracer{log: ll, msg: backend + " query"}
}

type zlTracer struct {
	log logger.Logger
	msg string
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(z.msg)
}

// IsSlow reports whether elapsedUS reaches the slowMs threshold, a negative threshold disables it
func IsSlow(elapsedUS int64, slowMs int) bool {
	return slowMs >= 0 && elapsedUS >= int64(slowMs)*1000
}

// Compact folds runs of whitespace into one space
func Compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}

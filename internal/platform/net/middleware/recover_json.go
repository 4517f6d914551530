package middleware

import (
	"net/http"
	"runtime/debug"

	perr "pgnframe/internal/platform/errors"
	"pgnframe/internal/platform/logger"
	pnet "pgnframe/internal/platform/net"
	phttp "pgnframe/internal/platform/net/http"
)

// RecoverJSON turns a panic into the standard 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			status, wire := perr.HTTP(perr.PanicErrf("internal error"))
			phttp.JSON(w, status, phttp.Envelope{
				StatusCode: status,
				Status:     http.StatusText(status),
				Code:       wire.Code,
				Error:      wire.Message,
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}

package httpkit

import (
	"net/http"
	"time"

	"pgnframe/internal/platform/net/middleware"
)

// CommonStack is the middleware every versioned API route gets
// origins feeds CORS, empty allows any origin
func CommonStack(origins []string) []func(http.Handler) http.Handler {
	return middleware.Stack(origins)
}

// Timeout cancels the request context after d and answers 504 if the handler overran
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return middleware.Timeout(d)
}

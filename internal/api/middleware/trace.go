// Package middleware contains HTTP middleware shared by the browser's routes.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-browser/internal/api/shared"
	"github.com/phrazzld/scry-browser/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that gives every request a trace ID and stores a
// logger tagged with it in the request context. It should run early in the
// chain so that handlers and error responses share the same trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			log := base.With(slog.String("trace_id", shared.GetTraceID(ctx)))
			ctx = logger.WithContext(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

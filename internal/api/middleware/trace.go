package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexicon-srs/internal/api/shared"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that attaches a trace ID to each
// request. A well-formed X-Trace-ID header is reused, otherwise an ID is
// generated. The ID is echoed in the response header, and a logger carrying
// it is stored in the request context for handlers to pick up with
// logger.FromContext.
//
// This middleware should be applied early in the chain so every later
// handler sees the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.WithTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package shield

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/credence/idgen"
	"github.com/hazyhaar/credence/kit"
)

var newTraceID = idgen.Prefixed("req_", idgen.NanoID(8))

// TraceID generates a trace ID for each request and injects it into the
// context, the response headers, and a per-request structured logger stored
// under LoggerKey.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := newTraceID()

		ctx := kit.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Trace-ID", traceID)

		logger := slog.Default().With(
			"trace_id", traceID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx = context.WithValue(ctx, LoggerKey, logger)
		logger.Debug("request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

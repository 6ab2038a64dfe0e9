package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akansha-code/volumemcpserver/internal/api/ctxkeys"
)

// Audit logs every authenticated request with the token that made it.
// Expected order in the router: Auth -> Audit -> handlers.
//
// The response writer is wrapped with chi's WrapResponseWriter rather than a
// plain status recorder: the tool endpoint streams SSE, so the wrapper must
// keep http.Flusher reachable.
func Audit(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}

			tokenID, ok := getStringContext(r.Context(), ctxkeys.TokenID)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "request",
				"token_id", tokenID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func getStringContext(ctx context.Context, key ctxkeys.Key) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront-api/pkg/logger"
)

// RequestLogger puts a per-request logger into the context so services and
// WriteError log with the caller's correlation and trace IDs plus the
// storefront endpoint being served. It must run after RequestLogging and
// Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			scoped := logger.WithContext(ctx, base).With(
				slog.String("endpoint", r.Method+" "+r.URL.Path),
			)
			next.ServeHTTP(w, r.WithContext(logger.NewContext(ctx, scoped)))
		})
	}
}

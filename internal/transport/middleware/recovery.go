package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/moneywatch/moneywatch/pkg/logger"
)

// RecoveryMiddleware turns panics into 500 responses instead of dropped
// connections. The stack goes to the request-scoped logger, never to the
// client.
func RecoveryMiddleware(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l := logger.From(r.Context())
					if l == nil {
						l = lg
					}
					l.Error("panic recovered",
						"error", rec,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"code":500,"message":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shiva-srivastav/zest-products/pkg/logger"
)

// Recovery converts panics into 500 responses instead of tearing down the
// connection. The stack trace goes to the log, never to the client.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					handlePanic(w, r, l, rec)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func handlePanic(w http.ResponseWriter, r *http.Request, l *slog.Logger, rec any) {
	ctx := r.Context()
	l.ErrorContext(ctx, "panic recovered",
		slog.Any("panic", rec),
		slog.String("stack", string(debug.Stack())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("correlation_id", logger.CorrelationIDFromContext(ctx)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "INTERNAL_ERROR",
		"message": "an internal error occurred",
	})
}

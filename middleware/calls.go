package middleware

import (
	"context"
	"net/http"
	"strings"

	"expense-api/logger"
)

// RecordFunc counts one call to path.
type RecordFunc func(ctx context.Context, path string) error

// RecordCalls counts every request before it is served, except the
// statistics API itself and the docs and health endpoints. Recording
// failures are logged and never affect the request.
func RecordCalls(record RecordFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if shouldRecord(path) {
				if err := record(r.Context(), path); err != nil {
					logger.FromContext(r.Context()).WarnContext(r.Context(), "call recording failed", "path", path, "error", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func shouldRecord(path string) bool {
	if strings.Contains(path, "/statistics") {
		return false
	}
	switch path {
	case "/docs", "/openapi.json", "/healthz":
		return false
	}
	return true
}

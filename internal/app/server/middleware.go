package server

import (
	"net/http"
	"time"

	"front-of-house/internal/logger"

	"github.com/google/uuid"
)

// withRequestID stamps each request with an id, echoes it in the response
// and logs the request outcome.
func withRequestID(next http.Handler, lg *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)

		lg.WithRequestID(id).Debug("http_request", map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

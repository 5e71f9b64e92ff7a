package metrics

import (
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware returns middleware that records HTTP metrics.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			reg.RecordRequest(r.Method, normalizePath(r.URL.Path), rw.statusCode, duration)
		})
	}
}

// symbolRoutes are the route prefixes that carry an index name as the
// final path segment.
var symbolRoutes = []string{
	"/api/market/index/",
	"/api/market/historical/",
	"/api/market/options/",
	"/api/backtest/archive/",
}

// normalizePath collapses per-symbol path segments so the path label
// stays low-cardinality.
func normalizePath(path string) string {
	for _, prefix := range symbolRoutes {
		if strings.HasPrefix(path, prefix) {
			return prefix + "{symbol}"
		}
	}
	return path
}

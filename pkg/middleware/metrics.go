package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"contour/pkg/metrics"

	"github.com/julienschmidt/httprouter"
)

// Metrics records request counts and latency. Routes are labelled by their
// httprouter pattern, not the raw path, to keep label cardinality bounded.
func Metrics(m *metrics.Metrics, router *httprouter.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := routePattern(router, r)
			m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			m.HTTPLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// routePattern rebuilds "/api/v1/drafts/:id" from "/api/v1/drafts/abc".
func routePattern(router *httprouter.Router, r *http.Request) string {
	if router == nil {
		return "unmatched"
	}
	handle, params, _ := router.Lookup(r.Method, r.URL.Path)
	if handle == nil {
		return "unmatched"
	}
	if len(params) == 0 {
		return r.URL.Path
	}

	segments := strings.Split(r.URL.Path, "/")
	for _, p := range params {
		for i, seg := range segments {
			if seg == p.Value {
				segments[i] = ":" + p.Key
				break
			}
		}
	}
	return strings.Join(segments, "/")
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nijaru/video-api/metrics"
)

// Metrics records request counts and latencies labelled by the matched chi
// route pattern. It must be installed with chi's Use so the pattern is known.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			collector.RequestsInFlight.Inc()
			defer collector.RequestsInFlight.Dec()

			lrw := newLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := strconv.Itoa(lrw.statusCode)
			collector.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			collector.RequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
		})
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsNamespace scopes the series so registry metrics stay
// distinguishable on shared Prometheus instances.
const metricsNamespace = "customer_registry"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served by the registry.",
	}, []string{"method", "path", "status_code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of registry HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status_code"})
)

func MetricsMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				duration := time.Since(start)
				statusCode := ww.Status()
				routePattern := chi.RouteContext(r.Context()).RoutePattern()

				httpRequestsTotal.WithLabelValues(r.Method, routePattern, http.StatusText(statusCode)).Inc()
				httpRequestDuration.WithLabelValues(r.Method, routePattern, http.StatusText(statusCode)).Observe(duration.Seconds())
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

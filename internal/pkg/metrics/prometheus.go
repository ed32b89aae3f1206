package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideavalidator",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ideavalidator",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ideavalidator",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Analysis metrics
	analysisTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideavalidator",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of AI validation runs",
		},
		[]string{"provider", "outcome"},
	)

	analysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ideavalidator",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "AI validation call duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	quotaDenialsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ideavalidator",
			Subsystem: "quota",
			Name:      "denials_total",
			Help:      "Total number of submissions denied by the free-plan quota",
		},
	)

	billingEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ideavalidator",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Total number of billing webhook events received",
		},
		[]string{"type", "outcome"},
	)
)

// RecordAnalysis records an AI validation run
func RecordAnalysis(provider, outcome string, duration time.Duration) {
	analysisTotal.WithLabelValues(provider, outcome).Inc()
	analysisDuration.Observe(duration.Seconds())
}

// RecordQuotaDenial records a quota denial
func RecordQuotaDenial() {
	quotaDenialsTotal.Inc()
}

// RecordBillingEvent records a billing webhook event
func RecordBillingEvent(eventType, outcome string) {
	billingEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			// Use the chi route pattern so path cardinality stays bounded
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := strconv.Itoa(wrapped.status)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentify_analyses_total",
			Help: "Total number of analyzed texts by resulting sentiment",
		},
		[]string{"sentiment"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentify_recommendations_total",
			Help: "Total number of recommendations by catalog category",
		},
		[]string{"category"},
	)

	SafeguardOverridesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentify_safeguard_overrides_total",
			Help: "Total number of ratings forced down by a negative keyword",
		},
	)

	ClassifierErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentify_classifier_errors_total",
			Help: "Total number of failed classifier calls",
		},
		[]string{"backend"},
	)

	ClassifierDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentify_classifier_duration_seconds",
			Help:    "Duration of classifier calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	ClassifierBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentify_classifier_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"backend"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentify_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DroppedAnalysesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentify_dropped_analyses_total",
			Help: "Total number of analyses not persisted because the writer queue was full",
		},
	)

	PersistedAnalysesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentify_persisted_analyses_total",
			Help: "Total number of analyses flushed to storage",
		},
	)

	WorkerRestartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentify_worker_restarts_total",
			Help: "Total number of supervised worker restarts by cause",
		},
		[]string{"worker", "reason"},
	)

	ProcessCPUPercent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentify_process_cpu_percent",
			Help: "CPU usage of a service process",
		},
		[]string{"node"},
	)

	ProcessRSSBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sentify_process_rss_bytes",
			Help: "Resident memory of a service process",
		},
		[]string{"node"},
	)
)

func RecordAnalysis(sentiment, category string, overridden bool) {
	AnalysesTotal.WithLabelValues(sentiment).Inc()
	RecommendationsTotal.WithLabelValues(category).Inc()
	if overridden {
		SafeguardOverridesTotal.Inc()
	}
}

func RecordClassifierCall(backend string, duration time.Duration, err error) {
	ClassifierDuration.WithLabelValues(backend).Observe(duration.Seconds())
	if err != nil {
		ClassifierErrorsTotal.WithLabelValues(backend).Inc()
	}
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SetBreakerState maps a breaker state name to the gauge value.
func SetBreakerState(backend, state string) {
	var v float64
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	ClassifierBreakerState.WithLabelValues(backend).Set(v)
}

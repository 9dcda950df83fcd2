package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	searchesTotal          *prometheus.CounterVec
	searchFailuresTotal    *prometheus.CounterVec
	classificationTotal    *prometheus.CounterVec
	stageDuration          *prometheus.HistogramVec
	candidateDocuments     *prometheus.HistogramVec
	filteredDocuments      *prometheus.HistogramVec
	topScoreDistribution   *prometheus.HistogramVec
	confidenceDistribution *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mevzuat",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mevzuat",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	searchesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mevzuat",
			Subsystem: "search",
			Name:      "searches_total",
			Help:      "Total completed searches by detected legal domain and confidence level.",
		},
		[]string{"service", "legal_domain", "confidence_level"},
	)
	searchFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mevzuat",
			Subsystem: "search",
			Name:      "failures_total",
			Help:      "Total searches that ended with a pipeline error.",
		},
		[]string{"service"},
	)
	classificationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mevzuat",
			Subsystem: "classify",
			Name:      "classifications_total",
			Help:      "Total domain classifications by method.",
		},
		[]string{"service", "method"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "stage"},
	)
	candidateDocuments := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "search",
			Name:      "candidate_documents",
			Help:      "Distribution of raw candidate documents per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 30, 50},
		},
		[]string{"service"},
	)
	filteredDocuments := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "search",
			Name:      "filtered_documents",
			Help:      "Distribution of documents surviving the relevance filter per search.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service"},
	)
	topScoreDistribution := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "rank",
			Name:      "top_score",
			Help:      "Distribution of the best final ranking score per search.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"service"},
	)
	confidenceDistribution := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mevzuat",
			Subsystem: "confidence",
			Name:      "overall_score",
			Help:      "Distribution of overall query-interpretation confidence.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		searchesTotal,
		searchFailuresTotal,
		classificationTotal,
		stageDuration,
		candidateDocuments,
		filteredDocuments,
		topScoreDistribution,
		confidenceDistribution,
	)

	return &HTTPServerMetrics{
		registry:               registry,
		requestTotal:           requestTotal,
		requestDuration:        requestDuration,
		requestInFlight:        requestInFlight,
		searchesTotal:          searchesTotal,
		searchFailuresTotal:    searchFailuresTotal,
		classificationTotal:    classificationTotal,
		stageDuration:          stageDuration,
		candidateDocuments:     candidateDocuments,
		filteredDocuments:      filteredDocuments,
		topScoreDistribution:   topScoreDistribution,
		confidenceDistribution: confidenceDistribution,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath keeps label cardinality bounded; anything outside the served
// routes is collapsed.
func normalizePath(path string) string {
	switch path {
	case "/v1/search", "/v1/match", "/healthz", "/metrics":
		return path
	default:
		return "other"
	}
}

// RecordSearch observes one completed pipeline run.
func (m *HTTPServerMetrics) RecordSearch(service, legalDomain, confidenceLevel string, rawCount, filteredCount int, topScore, overallConfidence float64) {
	if legalDomain == "" {
		legalDomain = "unknown"
	}
	if confidenceLevel == "" {
		confidenceLevel = "unknown"
	}
	m.searchesTotal.WithLabelValues(service, legalDomain, confidenceLevel).Inc()
	m.candidateDocuments.WithLabelValues(service).Observe(float64(rawCount))
	m.filteredDocuments.WithLabelValues(service).Observe(float64(filteredCount))
	if filteredCount > 0 {
		m.topScoreDistribution.WithLabelValues(service).Observe(topScore)
	}
	m.confidenceDistribution.WithLabelValues(service).Observe(overallConfidence)
}

func (m *HTTPServerMetrics) RecordSearchFailure(service string) {
	m.searchFailuresTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordClassification(service, method string) {
	if method == "" {
		method = "unknown"
	}
	m.classificationTotal.WithLabelValues(service, method).Inc()
}

func (m *HTTPServerMetrics) RecordStageDuration(service, stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(service, stage).Observe(duration.Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}

// Package metrics exposes conversion counters for Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "md2docx"

// Conversion outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeInvalidParams = "invalid_params"
	OutcomeFailed        = "failed"
)

// Metrics holds the collectors. It implements md2docx.Recorder.
type Metrics struct {
	conversions *prometheus.CounterVec
	fallbacks   *prometheus.CounterVec
	duration    prometheus.Histogram
	requests    *prometheus.CounterVec
}

// New registers the collectors on reg. Use prometheus.NewRegistry() in
// tests to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		conversions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_total",
				Help:      "Markdown to DOCX conversions by outcome.",
			},
			[]string{"outcome"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "styling_fallbacks_total",
				Help:      "Conversions whose styling degraded, by reason.",
			},
			[]string{"reason"},
		),
		duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "conversion_duration_seconds",
				Help:      "Duration of Convert calls.",
				Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
	}
}

// ConversionDone records one conversion. A zero elapsed time skips the
// histogram, for outcomes decided before conversion started.
func (m *Metrics) ConversionDone(outcome string, elapsed time.Duration) {
	m.conversions.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		m.duration.Observe(elapsed.Seconds())
	}
}

// StylingFallback records a degraded styling pass.
func (m *Metrics) StylingFallback(reason string) {
	m.fallbacks.WithLabelValues(reason).Inc()
}

// HTTPRequest records one served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (m *Metrics) HTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

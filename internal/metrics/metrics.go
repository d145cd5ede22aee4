// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Quiz draw outcomes.
const (
	QuizServed    = "served"
	QuizExhausted = "exhausted"
	QuizError     = "error"
)

// Metrics groups the collectors so tests can register them on a private registry.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Draws    *prometheus.CounterVec
}

// New registers the collectors on reg (prometheus.DefaultRegisterer in production).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "trivia",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Draws: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trivia",
			Name:      "quiz_draws_total",
			Help:      "Quiz draws by outcome.",
		}, []string{"outcome"}),
	}
}

// QuizDraw counts one quiz call by outcome.
func (m *Metrics) QuizDraw(outcome string) {
	m.Draws.WithLabelValues(outcome).Inc()
}

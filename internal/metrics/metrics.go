// Package metrics holds the Prometheus collectors of the assembler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"course_assembler/internal/domain"
)

const namespace = "course_assembler"

// Lesson outcomes.
const (
	OutcomeReused        = "reused"
	OutcomeVideo         = "video"
	OutcomeLowConfidence = "low_confidence"
	OutcomeText          = "text"
	OutcomeSkipped       = "skipped"
	OutcomeError         = "error"
)

type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	LessonsTotal *prometheus.CounterVec
	QueueDepth   prometheus.Gauge
	RunsRunning  prometheus.Gauge
	JobsRejected prometheus.Counter
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	registry prometheus.Gatherer
}

// New registers every collector on reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Assembly runs by final status",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one assembly run",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~68min
		}),
		LessonsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lessons_total",
			Help:      "Processed lessons by outcome",
		}, []string{"outcome"}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_depth",
			Help:      "Runs waiting for a worker",
		}),
		RunsRunning: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runs_running",
			Help:      "Runs currently executing",
		}),
		JobsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_rejected_total",
			Help:      "Triggers rejected because the queue was full",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		registry: reg,
	}
}

// ObserveRun records the outcome of a finished run.
func (m *Metrics) ObserveRun(stats domain.RunStats, err error) {
	status := string(domain.JobCompleted)
	if err != nil {
		status = string(domain.JobFailed)
	}
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(stats.Duration.Seconds())

	m.LessonsTotal.WithLabelValues(OutcomeReused).Add(float64(stats.Reused))
	m.LessonsTotal.WithLabelValues(OutcomeVideo).Add(float64(stats.Video))
	m.LessonsTotal.WithLabelValues(OutcomeLowConfidence).Add(float64(stats.LowConfident))
	m.LessonsTotal.WithLabelValues(OutcomeText).Add(float64(stats.Text))
	m.LessonsTotal.WithLabelValues(OutcomeSkipped).Add(float64(stats.Skipped))
	m.LessonsTotal.WithLabelValues(OutcomeError).Add(float64(stats.Errors))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

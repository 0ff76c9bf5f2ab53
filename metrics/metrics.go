// Package metrics exposes Prometheus counters for score card reads and commits.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/padraicbc/scorecard/scorecard"
)

// Commit results used as the "result" label.
const (
	ResultOK          = "ok"
	ResultStale       = "stale_reference"
	ResultPersistence = "persistence"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	commits        *prometheus.CounterVec
	rows           *prometheus.CounterVec
	loadFailures   prometheus.Counter
	commitDuration prometheus.Histogram
}

// New registers the score card collectors plus the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scorecard",
			Name:      "commits_total",
			Help:      "Commit attempts by result.",
		}, []string{"result"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scorecard",
			Name:      "rows_committed_total",
			Help:      "Rows changed by successful commits, by operation.",
		}, []string{"op"}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scorecard",
			Name:      "load_failures_total",
			Help:      "Table reads that failed.",
		}),
		commitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scorecard",
			Name:      "commit_duration_seconds",
			Help:      "Time spent applying a batch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.commits, m.rows, m.loadFailures, m.commitDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCommit records the outcome of one Commit call.
func (m *Metrics) ObserveCommit(b scorecard.Batch, err error, took time.Duration) {
	m.commitDuration.Observe(took.Seconds())
	switch {
	case err == nil:
		m.commits.WithLabelValues(ResultOK).Inc()
		m.rows.WithLabelValues("update").Add(float64(len(b.Edits)))
		m.rows.WithLabelValues("insert").Add(float64(len(b.Inserts)))
		m.rows.WithLabelValues("delete").Add(float64(len(uniq(b.Deletes))))
	case scorecard.IsStale(err):
		m.commits.WithLabelValues(ResultStale).Inc()
	default:
		m.commits.WithLabelValues(ResultPersistence).Inc()
	}
}

// LoadFailed counts a failed table read.
func (m *Metrics) LoadFailed() { m.loadFailures.Inc() }

func uniq(xs []int) map[int]struct{} {
	out := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		out[x] = struct{}{}
	}
	return out
}

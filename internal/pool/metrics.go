package pool

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the pool's Prometheus series. A nil *Metrics is safe to use
// everywhere below; every method degrades to a no-op so callers that build a
// pool without a registry (most tests) never need a stub.
type Metrics struct {
	jobsSubmitted prometheus.Counter
	jobsCompleted prometheus.Counter
	jobsPanicked  prometheus.Counter
	queueDepth    prometheus.Gauge
}

// NewMetrics registers the pool's series against reg and returns a *Metrics
// bound to them. Pass a fresh registry per run, never
// prometheus.DefaultRegisterer, so tests can assert on counter values without
// cross-test interference.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		jobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_jobs_submitted_total",
			Help: "Jobs submitted to the worker pool.",
		}),
		jobsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_jobs_completed_total",
			Help: "Jobs the worker pool finished without panicking.",
		}),
		jobsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pool_jobs_panicked_total",
			Help: "Jobs the worker pool recovered from a panic in.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pool_queue_depth",
			Help: "Jobs currently enqueued but not yet picked up by a worker.",
		}),
	}
	reg.MustRegister(m.jobsSubmitted, m.jobsCompleted, m.jobsPanicked, m.queueDepth)
	return m
}

func (m *Metrics) submitted() {
	if m != nil {
		m.jobsSubmitted.Inc()
		m.queueDepth.Inc()
	}
}

func (m *Metrics) dequeued() {
	if m != nil {
		m.queueDepth.Dec()
	}
}

func (m *Metrics) completed() {
	if m != nil {
		m.jobsCompleted.Inc()
	}
}

func (m *Metrics) panicked() {
	if m != nil {
		m.jobsPanicked.Inc()
	}
}

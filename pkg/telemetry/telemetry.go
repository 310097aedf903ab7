// Package telemetry wires up the structured logger and the Prometheus
// metrics surface shared by every pipeline stage in one run.
package telemetry

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"dictrec/internal/pool"
)

// NewLogger builds a zerolog.Logger writing human-readable, leveled output
// to w, filtering below level. An unrecognised level falls back to Info.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(parsed).
		With().Timestamp().Logger()
}

// Metrics bundles every Prometheus series this system publishes, registered
// against a single registry owned by the run (never the package-level
// default registerer, so concurrent test runs never collide).
type Metrics struct {
	Registry *prometheus.Registry
	Pool     *pool.Metrics

	mctsRollouts prometheus.Counter
	mctsRounds   prometheus.Counter
	mctsBest     prometheus.Gauge
}

// New constructs a fresh registry and registers every series this system
// exposes: the pool's job/queue counters (internal/pool.Metrics) and the
// MCTS rollout/round/best-score series.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Pool:     pool.NewMetrics(reg),
		mctsRollouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcts_rollouts_total",
			Help: "Rollouts (non-greedy or greedy) performed across all MCTS trials.",
		}),
		mctsRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mcts_rounds_total",
			Help: "Outer-loop selection rounds completed.",
		}),
		mctsBest: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mcts_best_score",
			Help: "Heuristic score of the selection committed by the most recent outer-loop round.",
		}),
	}
	reg.MustRegister(m.mctsRollouts, m.mctsRounds, m.mctsBest)
	return m
}

// RolloutPerformed increments the rollout counter. Safe to call on a nil
// *Metrics.
func (m *Metrics) RolloutPerformed() {
	if m != nil {
		m.mctsRollouts.Inc()
	}
}

// RoundCompleted increments the outer-loop round counter and records the
// round's best score. Safe to call on a nil *Metrics.
func (m *Metrics) RoundCompleted(bestScore float64) {
	if m != nil {
		m.mctsRounds.Inc()
		m.mctsBest.Set(bestScore)
	}
}

// ServeHTTP exposes every registered series at /metrics on addr until the
// process exits or the listener errors. Intended to run in its own
// goroutine; a caller that never passes --metrics-addr never calls this,
// but the registry is still populated for tests to assert against directly.
func ServeHTTP(addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}

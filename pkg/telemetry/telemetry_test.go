package telemetry

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFallsBackToInfoOnUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "not-a-level")
	log.Debug().Msg("should not appear")
	log.Info().Msg("should appear")
	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RolloutPerformed()
		m.RoundCompleted(1.5)
	})
}

func TestMetricsRegistersAndCounts(t *testing.T) {
	m := New()
	m.RolloutPerformed()
	m.RolloutPerformed()
	require.NotNil(t, m.Registry)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.mctsRollouts))
}

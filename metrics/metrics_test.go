package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsPerScheme(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.RecordFound("linear")
	rec.RecordFound("linear")
	rec.RecordMiss("guided")
	rec.RecordFalsePositive("linear")
	rec.SetFillRatio("guided", 0.42)

	require.Equal(t, float64(2), counterValue(t, rec.found, "linear"))
	require.Equal(t, float64(0), counterValue(t, rec.found, "guided"))
	require.Equal(t, float64(1), counterValue(t, rec.miss, "guided"))
	require.Equal(t, float64(1), counterValue(t, rec.falsePositive, "linear"))
	require.Equal(t, float64(0.42), gaugeValue(t, rec.fillRatio, "guided"))
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, label string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(label).Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, vec *prometheus.GaugeVec, label string) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, vec.WithLabelValues(label).Write(&m))
	return m.GetGauge().GetValue()
}

// Package metrics wraps Prometheus counters and gauges around the lookup
// schemes for the benchmark driver. It exists precisely so that the core
// ipfilter packages never need to: spec.md §9's Design Notes call for "a
// first-class counter record passed to instrumented operations... the
// core's correctness must not depend on counting", so no ipfilter package
// imports this one. Only cmd/ipfilter wires a Recorder around the Lookup
// calls it makes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ipfilter"

// Recorder holds the counters and gauges for one benchmark run, labeled by
// lookup scheme ("linear" or "guided") so both schemes can be compared
// from the same registry.
type Recorder struct {
	found         *prometheus.CounterVec
	miss          *prometheus.CounterVec
	falsePositive *prometheus.CounterVec
	fillRatio     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder and registers its instruments with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		found: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_found_total",
			Help:      "Number of lookups that resolved to a FIB entry.",
		}, []string{"scheme"}),
		miss: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_miss_total",
			Help:      "Number of lookups that resolved to no match.",
		}, []string{"scheme"}),
		falsePositive: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bloom_false_positives_total",
			Help:      "Number of Bloom hits that the FIB did not confirm.",
		}, []string{"scheme"}),
		fillRatio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bloom_fill_ratio",
			Help:      "Fraction of set bits in the Bloom bit array at report time.",
		}, []string{"scheme"}),
	}

	reg.MustRegister(r.found, r.miss, r.falsePositive, r.fillRatio)
	return r
}

// RecordFound increments the found counter for scheme.
func (r *Recorder) RecordFound(scheme string) { r.found.WithLabelValues(scheme).Inc() }

// RecordMiss increments the miss counter for scheme.
func (r *Recorder) RecordMiss(scheme string) { r.miss.WithLabelValues(scheme).Inc() }

// RecordFalsePositive increments the false-positive counter for scheme.
func (r *Recorder) RecordFalsePositive(scheme string) { r.falsePositive.WithLabelValues(scheme).Inc() }

// SetFillRatio sets the current fill-ratio gauge for scheme.
func (r *Recorder) SetFillRatio(scheme string, ratio float64) {
	r.fillRatio.WithLabelValues(scheme).Set(ratio)
}

// Handler returns the /metrics scrape handler for reg. It exposes only the
// collectors already registered with reg (such as a Recorder's); it adds
// no Go or process collectors and creates no registry of its own.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

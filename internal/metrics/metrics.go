// Package metrics exposes Prometheus instruments for synthesis runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vk/reactsynth/internal/engine"
)

const namespace = "reactsynth"

// Recorder owns a registry so that several apps, and tests, can run in
// one process.
type Recorder struct {
	registry *prometheus.Registry

	syntheses       *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	skippedIDs      prometheus.Counter
	unknownLiterals prometheus.Counter
	inFlight        prometheus.Gauge
}

// NewRecorder registers every instrument on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		syntheses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syntheses_total",
			Help:      "Finished synthesis runs by engine and verdict.",
		}, []string{"engine", "verdict"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "synthesis_duration_seconds",
			Help:      "Wall time of synthesis runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"engine"}),
		skippedIDs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_ids_total",
			Help:      "Decoded ids that fell outside the game during extraction.",
		}),
		unknownLiterals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_literals_total",
			Help:      "Guard literals that named no declared signal.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "syntheses_in_flight",
			Help:      "Synthesis runs currently executing.",
		}),
	}
	r.registry.MustRegister(r.syntheses, r.duration, r.skippedIDs, r.unknownLiterals, r.inFlight)
	return r
}

// Start marks a run as started. Call the returned func when it ends.
func (r *Recorder) Start() func() {
	r.inFlight.Inc()
	return r.inFlight.Dec
}

// Observe records a finished run.
func (r *Recorder) Observe(res *engine.Result) {
	r.syntheses.WithLabelValues(res.Engine, string(res.Verdict())).Inc()
	r.duration.WithLabelValues(res.Engine).Observe(res.Elapsed.Seconds())
	r.skippedIDs.Add(float64(res.SkippedIDs))
	r.unknownLiterals.Add(float64(len(res.UnknownLiterals)))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

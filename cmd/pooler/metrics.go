package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/utkarsh5026/pooler/pool"
)

// runMetrics collects the counters of one pooler invocation in a private
// registry, written out in the node_exporter textfile format.
type runMetrics struct {
	registry *prometheus.Registry

	units    *prometheus.CounterVec
	rounds   prometheus.Gauge
	failing  prometheus.Gauge
	duration prometheus.Gauge
	peakRSS  prometheus.Gauge
	lastRun  prometheus.Gauge
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pooler",
			Name:      "units_total",
			Help:      "Unit attempts by outcome, across all rounds.",
		}, []string{"outcome"}),
		rounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pooler",
			Name:      "rounds",
			Help:      "Rounds executed by the last run.",
		}),
		failing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pooler",
			Name:      "failing_inputs",
			Help:      "Inputs still failing after the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pooler",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last run.",
		}),
		peakRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pooler",
			Name:      "peak_rss_bytes",
			Help:      "Peak resident set size of the process.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pooler",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	m.registry.MustRegister(m.units, m.rounds, m.failing, m.duration, m.peakRSS, m.lastRun)
	return m
}

func (m *runMetrics) observe(o pool.Outcome[string, string]) {
	outcome := "success"
	if o.Failed() {
		outcome = "failure"
	}
	m.units.WithLabelValues(outcome).Inc()
}

func (m *runMetrics) record(res *result) {
	m.rounds.Set(float64(res.Rounds))
	m.failing.Set(float64(len(res.Failures)))
	m.duration.Set(res.Elapsed.Seconds())
	m.peakRSS.Set(float64(res.PeakRSS))
	m.lastRun.SetToCurrentTime()
}

func (m *runMetrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

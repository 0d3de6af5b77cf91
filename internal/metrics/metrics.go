// Package metrics counts what an invocation did and can flush the counters
// as a Prometheus textfile, the node-exporter textfile-collector pattern.
// procwatch opens no listeners; the textfile is the only export surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recorder owns a private registry of procwatch counters.
type Recorder struct {
	registry     *prometheus.Registry
	snapshots    prometheus.Counter
	terminations *prometheus.CounterVec
	recoveries   *prometheus.CounterVec
}

// NewRecorder creates a recorder with all counters registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "procwatch_snapshots_total",
			Help: "Process snapshots captured.",
		}),
		terminations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procwatch_termination_outcomes_total",
			Help: "Termination outcomes by method.",
		}, []string{"method"}),
		recoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "procwatch_recovery_attempts_total",
			Help: "Recovery attempts by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.snapshots, r.terminations, r.recoveries)
	return r
}

// Snapshot counts one process table capture.
func (r *Recorder) Snapshot() {
	r.snapshots.Inc()
}

// Termination counts one per-target outcome by method name.
func (r *Recorder) Termination(method string) {
	r.terminations.WithLabelValues(method).Inc()
}

// Recovery counts one recovery attempt by result.
func (r *Recorder) Recovery(result string) {
	r.recoveries.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry to path in Prometheus text format,
// atomically via a rename.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

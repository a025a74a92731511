// Package metrics records command and dataset counters in a private
// Prometheus registry that can be dumped to a node_exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "divvy"

// Recorder holds the collectors for one process run.
type Recorder struct {
	registry *prometheus.Registry

	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	invalid         prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	records         *prometheus.GaugeVec
	skipped         *prometheus.GaugeVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command name.",
		}, []string{"command"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent answering a command.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"command"}),
		invalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_commands_total",
			Help:      "Command lines rejected as unknown or malformed.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Command outputs served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Command outputs computed from the datasets.",
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records loaded, by dataset.",
		}, []string{"dataset"}),
		skipped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_skipped_lines",
			Help:      "Input lines dropped by the parser, by dataset.",
		}, []string{"dataset"}),
	}

	r.registry.MustRegister(
		r.commands,
		r.commandDuration,
		r.invalid,
		r.cacheHits,
		r.cacheMisses,
		r.records,
		r.skipped,
	)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCommand counts one executed command and its latency.
func (r *Recorder) ObserveCommand(command string, elapsed time.Duration) {
	r.commands.WithLabelValues(command).Inc()
	r.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// InvalidCommand counts one rejected command line.
func (r *Recorder) InvalidCommand() {
	r.invalid.Inc()
}

// CacheResult counts a cache hit or miss.
func (r *Recorder) CacheResult(hit bool) {
	if hit {
		r.cacheHits.Inc()
		return
	}
	r.cacheMisses.Inc()
}

// SetDataset records how many records were loaded and skipped for a dataset.
func (r *Recorder) SetDataset(dataset string, records, skipped int) {
	r.records.WithLabelValues(dataset).Set(float64(records))
	r.skipped.WithLabelValues(dataset).Set(float64(skipped))
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Package metrics exports reactive engine activity as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(metrics.WithRegistry(reg))
//	unregister := reactive.Observe(c)
//	defer unregister()
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reference/pkg/reactive"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reference").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for computation duration.
	// Default: 10µs to ~2.6s in powers of four.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reference",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Write statuses.
const (
	StatusOK       = "ok"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Collector is a reactive.Observer recording engine activity.
type Collector struct {
	computations     *prometheus.CounterVec
	computationErrs  *prometheus.CounterVec
	computationTimes *prometheus.HistogramVec
	writes           *prometheus.CounterVec
	poisoned         prometheus.Counter

	// starts holds the start times of computations in progress, innermost
	// last.
	starts []time.Time
}

var _ reactive.Observer = (*Collector)(nil)

// New creates a collector and registers its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computations_total",
			Help:        "Total number of formula and accessor recomputations",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		computationErrs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computation_errors_total",
			Help:        "Total number of recomputations that failed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		computationTimes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computation_duration_seconds",
			Help:        "Recomputation duration in seconds, including nested recomputations",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of writes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		poisoned: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "poisoned_total",
			Help:        "Total number of poisoned constant properties created",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ComputeStarted implements reactive.Observer.
func (c *Collector) ComputeStarted(reactive.NodeInfo) {
	c.starts = append(c.starts, time.Now())
}

// ComputeFinished implements reactive.Observer.
func (c *Collector) ComputeFinished(info reactive.NodeInfo, err error) {
	kind := info.Kind.String()
	if n := len(c.starts); n > 0 {
		start := c.starts[n-1]
		c.starts = c.starts[:n-1]
		c.computationTimes.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
	c.computations.WithLabelValues(kind).Inc()
	if err != nil {
		c.computationErrs.WithLabelValues(kind).Inc()
	}
}

// Written implements reactive.Observer.
func (c *Collector) Written(info reactive.NodeInfo, err error) {
	c.writes.WithLabelValues(info.Kind.String(), writeStatus(err)).Inc()
}

// Poisoned implements reactive.Observer.
func (c *Collector) Poisoned(reactive.NodeInfo, error) {
	c.poisoned.Inc()
}

func writeStatus(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, reactive.ErrNotUpdatable):
		return StatusRejected
	default:
		return StatusError
	}
}

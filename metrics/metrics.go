// Package metrics exports ReactiveSystem counters to Prometheus.
package metrics

import (
	"sync"

	"github.com/delaneyj/propcell/property"
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "propcell").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry the collector registers with.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "propcell",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is a prometheus.Collector over the counters of one
// ReactiveSystem. The system is single-threaded while scrapes are not, so
// the event loop calls Observe once per frame and Collect only reports the
// last snapshot.
type Collector struct {
	rs *property.ReactiveSystem

	evaluations *prometheus.Desc
	dirtyMarks  *prometheus.Desc
	allocated   *prometheus.Desc
	live        *prometheus.Desc
	animating   *prometheus.Desc

	mu       sync.Mutex
	stats    property.Stats
	animated bool
}

// New creates a collector for rs and registers it with the configured
// registry.
func New(rs *property.ReactiveSystem, opts ...Option) (*Collector, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(config.Namespace, config.Subsystem, name),
			help, nil, config.ConstLabels,
		)
	}
	c := &Collector{
		rs:          rs,
		evaluations: desc("evaluations_total", "Total number of binding evaluations"),
		dirtyMarks:  desc("dirty_marks_total", "Total number of cache invalidations"),
		allocated:   desc("cells_allocated_total", "Total number of cells allocated"),
		live:        desc("cells_live", "Number of cells currently alive"),
		animating:   desc("animations_active", "Whether an animation still needs frames"),
	}
	c.Observe()

	if config.Registry != nil {
		if err := config.Registry.Register(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe snapshots the system's counters. It must be called from the
// goroutine driving the system.
func (c *Collector) Observe() {
	animated := c.rs.HasActiveAnimations()
	stats := c.rs.Stats()

	c.mu.Lock()
	c.stats = stats
	c.animated = animated
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.evaluations
	ch <- c.dirtyMarks
	ch <- c.allocated
	ch <- c.live
	ch <- c.animating
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	stats, animated := c.stats, c.animated
	c.mu.Unlock()

	active := 0.0
	if animated {
		active = 1
	}
	ch <- prometheus.MustNewConstMetric(c.evaluations, prometheus.CounterValue, float64(stats.Evaluations))
	ch <- prometheus.MustNewConstMetric(c.dirtyMarks, prometheus.CounterValue, float64(stats.DirtyMarks))
	ch <- prometheus.MustNewConstMetric(c.allocated, prometheus.CounterValue, float64(stats.Allocated))
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(stats.Live))
	ch <- prometheus.MustNewConstMetric(c.animating, prometheus.GaugeValue, active)
}

// Package metrics exports container query statistics to Prometheus.
package metrics

import (
	"time"

	"github.com/centraunit/pluginmap"
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeSuccess labels queries that returned a value. Failed queries are
// labelled with pluginmap.Kind of their error.
const OutcomeSuccess = "success"

// Collector counts and times container queries. Pass it to
// pluginmap.WithObserver and register it with a prometheus.Registerer.
type Collector struct {
	resolutions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ pluginmap.Observer = (*Collector)(nil)
var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector with empty series.
func NewCollector() *Collector {
	return &Collector{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pluginmap_resolutions_total",
				Help: "Number of container queries by requested type and outcome.",
			},
			[]string{"type", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pluginmap_resolution_duration_seconds",
				Help:    "Time taken to build the value of a container query.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
	}
}

// ObserveResolution implements pluginmap.Observer.
func (c *Collector) ObserveResolution(requested pluginmap.Type, _ string, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = pluginmap.Kind(err)
	}
	c.resolutions.WithLabelValues(requested.String(), outcome).Inc()
	c.duration.WithLabelValues(requested.String()).Observe(elapsed.Seconds())
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.resolutions.Describe(ch)
	c.duration.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.resolutions.Collect(ch)
	c.duration.Collect(ch)
}

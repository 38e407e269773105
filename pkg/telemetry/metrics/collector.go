package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"arbor-hq/canopy/pkg/config"
)

// Collector owns the Prometheus registry and all of Canopy's metric
// groups.
type Collector struct {
	registry *prometheus.Registry

	// Build contains the grammar build pipeline metrics.
	Build *BuildMetrics
}

// NewCollector creates a collector with a fresh registry, standard Go
// runtime metrics, and Canopy's build metrics.
func NewCollector(cfg config.MetricsConfig) *Collector {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Collector{
		registry: registry,
		Build:    NewBuildMetrics(cfg, registry),
	}
}

// Registry exposes the underlying registry for additional registrations.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format, for mounting at /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

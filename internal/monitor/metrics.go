package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"graphlod/internal/perf"
)

// Collectors exposes governor state on a dedicated Prometheus registry,
// served by the admin server under /metrics.
type Collectors struct {
	registry *prometheus.Registry

	renderTime   prometheus.Histogram
	fps          prometheus.Gauge
	lodLevel     prometheus.Gauge
	visibleNodes prometheus.Gauge
	visibleEdges prometheus.Gauge
	renders      prometheus.Counter
	warnings     prometheus.Counter
}

// NewCollectors builds and registers the governor metric set.
func NewCollectors() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		registry: reg,
		renderTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphlod_render_time_ms",
			Help:    "Render duration per frame in milliseconds.",
			Buckets: []float64{1, 2, 5, 10, 16, 33, 66, 100, 250, 500, 1000},
		}),
		fps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphlod_fps",
			Help: "Derived frames per second from the rolling render average.",
		}),
		lodLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphlod_lod_level",
			Help: "Active level-of-detail tier (0 = full fidelity).",
		}),
		visibleNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphlod_visible_nodes",
			Help: "Node count in the current render set.",
		}),
		visibleEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "graphlod_visible_edges",
			Help: "Edge count in the current render set.",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphlod_renders_total",
			Help: "Total render events observed.",
		}),
		warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "graphlod_warnings_total",
			Help: "Total threshold-crossing warnings recorded.",
		}),
	}
	reg.MustRegister(c.renderTime, c.fps, c.lodLevel, c.visibleNodes, c.visibleEdges, c.renders, c.warnings)
	return c
}

// Registry returns the registry for HTTP exposition.
func (c *Collectors) Registry() *prometheus.Registry { return c.registry }

// ObserveSample folds one sample row into the metric set.
func (c *Collectors) ObserveSample(row perf.SampleRow) {
	c.renderTime.Observe(row.RenderTimeMs)
	c.fps.Set(row.FPS)
	c.lodLevel.Set(float64(row.LODLevel))
	c.visibleNodes.Set(float64(row.NodeCount))
	c.visibleEdges.Set(float64(row.EdgeCount))
	c.renders.Inc()
}

// ObserveWarning counts one warning.
func (c *Collectors) ObserveWarning() {
	c.warnings.Inc()
}

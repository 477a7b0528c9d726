// Point-in-time performance reports with actionable recommendations.
package report

import (
	"time"

	"graphlod/internal/lod"
	"graphlod/internal/perf"
)

// Status classifies current health from FPS and memory bands.
type Status string

// Status bands, best to worst.
const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusFair      Status = "fair"
	StatusPoor      Status = "poor"
)

// Report is an immutable snapshot of governor health.
type Report struct {
	Timestamp       time.Time           `json:"ts"`
	WebGLCapable    bool                `json:"webgl_capable"`
	Metrics         perf.Metrics        `json:"metrics"`
	Memory          *perf.MemoryReading `json:"memory,omitempty"`
	Tier            string              `json:"tier"`
	NodeCount       int                 `json:"node_count"`
	EdgeCount       int                 `json:"edge_count"`
	Status          Status              `json:"status"`
	Recommendations []string            `json:"recommendations"`
}

// FPS boundaries for the status bands.
const (
	excellentFPS = 50.0
	goodFPS      = 30.0
	fairFPS      = 15.0
)

// Generator assembles reports from the monitor's current state.
type Generator struct {
	monitor *perf.Monitor
	now     func() time.Time
}

// NewGenerator returns a report generator reading from monitor.
func NewGenerator(monitor *perf.Monitor) *Generator {
	return &Generator{monitor: monitor, now: time.Now}
}

// Generate aggregates current metrics, capabilities, and element counts.
// Safe to call at any time: before the first render it reports zeroed
// metrics with an excellent status, never an error.
func (g *Generator) Generate(nodeCount, edgeCount int) Report {
	metrics := g.monitor.Metrics()
	memory := g.monitor.LastMemory()
	fps := g.monitor.AverageFPS()
	tier := lod.Tier(metrics.LODLevel).Clamp()

	return Report{
		Timestamp:       g.now().UTC(),
		WebGLCapable:    g.monitor.CheckWebGL(),
		Metrics:         metrics,
		Memory:          memory,
		Tier:            tier.String(),
		NodeCount:       nodeCount,
		EdgeCount:       edgeCount,
		Status:          g.status(metrics, memory, fps),
		Recommendations: g.recommend(metrics, memory, fps, nodeCount, edgeCount),
	}
}

func (g *Generator) status(metrics perf.Metrics, memory *perf.MemoryReading, fps float64) Status {
	if metrics.RenderCount == 0 {
		return StatusExcellent
	}
	memOver := memory != nil && memory.Ratio() > g.monitor.MemoryWarningThreshold()
	switch {
	case fps >= excellentFPS && !memOver:
		return StatusExcellent
	case fps >= goodFPS && !memOver:
		return StatusGood
	case fps >= fairFPS:
		return StatusFair
	default:
		return StatusPoor
	}
}

func (g *Generator) recommend(metrics perf.Metrics, memory *perf.MemoryReading, fps float64, nodeCount, edgeCount int) []string {
	var recs []string

	if metrics.RenderCount > 0 && fps < g.monitor.LowFPSThreshold() {
		recs = append(recs, "reduce visible element count")
	}
	if memory != nil && memory.Ratio() > g.monitor.MemoryWarningThreshold() {
		recs = append(recs, "memory pressure high: raise the level-of-detail tier")
	}
	wanted := lod.DetermineTier(nodeCount, edgeCount)
	current := lod.Tier(metrics.LODLevel).Clamp()
	if wanted > current {
		recs = append(recs, "graph exceeds comfortable capacity: apply tier "+wanted.String())
	}
	if lod.Config(wanted).ClusteringEnabled && current < wanted {
		recs = append(recs, "enable clustering")
	}
	if len(recs) == 0 {
		recs = append(recs, "performance is within thresholds")
	}
	return recs
}

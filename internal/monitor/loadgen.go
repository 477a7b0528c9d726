package monitor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"graphlod/internal/graph"
	"graphlod/internal/logging"
	"graphlod/internal/perf"
)

// Render cost model for the simulated host, in milliseconds. Calibrated so
// that graphs around ten thousand visible elements hover near 30 FPS.
const (
	baseCostMs    = 2.0
	nodeCostMs    = 0.002
	edgeCostMs    = 0.001
	costJitterPct = 0.15
)

// SimHost is a synthetic host environment for the simulate command: it
// serves a fixed graph snapshot, models render cost from the visible
// element counts, and fakes a heap whose usage grows with those counts.
type SimHost struct {
	snap      graph.Snapshot
	rng       *rand.Rand
	heapLimit float64
	heapBase  float64
	perElem   float64

	mu           sync.Mutex
	visibleNodes int
	visibleEdges int
}

// NewSimHost creates a simulated host for the given graph.
func NewSimHost(snap graph.Snapshot, seed int64) *SimHost {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimHost{
		snap:      snap,
		rng:       rand.New(rand.NewSource(seed)),
		heapLimit: 2 << 30, // 2 GiB, a browser-tab-sized heap
		heapBase:  256 << 20,
		perElem:   12 << 10,
	}
}

// Snapshot implements SnapshotProvider.
func (h *SimHost) Snapshot() graph.Snapshot { return h.snap }

// Memory implements perf.MemoryProbe: usage scales with visible elements.
func (h *SimHost) Memory() perf.MemoryCapability {
	h.mu.Lock()
	elems := h.visibleNodes + h.visibleEdges
	h.mu.Unlock()
	used := h.heapBase + float64(elems)*h.perElem
	if used > h.heapLimit {
		used = h.heapLimit
	}
	return perf.MemoryCapability{
		Available: true,
		Reading: perf.MemoryReading{
			Used:  used,
			Total: h.heapLimit,
			Limit: h.heapLimit,
		},
	}
}

// Render implements perf.RenderProbe; the simulated host is accelerated.
func (h *SimHost) Render() perf.RenderCapability {
	return perf.RenderCapability{Available: true, Accelerated: true}
}

// renderCost models one frame's cost for the current visible counts.
func (h *SimHost) renderCost() float64 {
	h.mu.Lock()
	cost := baseCostMs + nodeCostMs*float64(h.visibleNodes) + edgeCostMs*float64(h.visibleEdges)
	h.mu.Unlock()
	jitter := 1 + (h.rng.Float64()*2-1)*costJitterPct
	return cost * jitter
}

// Run drives the governor's render hook on a fixed interval until the
// context is done, simulating the host render loop.
func (h *SimHost) Run(ctx context.Context, gov *Governor, tick time.Duration) {
	log := logging.FromContext(ctx)
	log.Info("starting simulated render loop", "tick_interval", tick,
		"nodes", h.snap.NodeCount(), "edges", h.snap.EdgeCount())
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			nodes, edges := gov.VisibleCounts()
			h.mu.Lock()
			h.visibleNodes, h.visibleEdges = nodes, edges
			h.mu.Unlock()
			gov.RecordRender(h.renderCost())
		case <-ctx.Done():
			log.Info("stopping simulated render loop")
			return
		}
	}
}

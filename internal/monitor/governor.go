// Governor orchestrating performance monitoring and LOD decisions
package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"graphlod/internal/cluster"
	"graphlod/internal/config"
	"graphlod/internal/graph"
	"graphlod/internal/lod"
	"graphlod/internal/perf"
	"graphlod/internal/report"
	"graphlod/internal/sampling"
)

// SnapshotProvider supplies the current graph for one decision cycle.
// The governor only reads the returned snapshot.
type SnapshotProvider interface {
	Snapshot() graph.Snapshot
}

// StaticProvider serves a fixed snapshot, used by the offline commands.
type StaticProvider struct {
	Snap graph.Snapshot
}

// Snapshot implements SnapshotProvider.
func (p StaticProvider) Snapshot() graph.Snapshot { return p.Snap }

// Governor owns the monitor, the LOD controller, and the heartbeat, and
// streams samples and warnings to the configured writers.
type Governor struct {
	sessionID    string
	cfg          *config.Config
	monitor      *perf.Monitor
	controller   *lod.Controller
	reporter     *report.Generator
	provider     SnapshotProvider
	writer       SampleWriter
	warnWriter   WarningWriter
	reportWriter ReportWriter
	heartbeat    *Heartbeat
	collectors   *Collectors

	mu        sync.Mutex
	reduction *lod.Reduction
	destroyed bool
}

// NewGovernor wires a governor from explicit collaborators. Probes may be
// nil when the host exposes no capability surface; writers may be nil to
// discard the corresponding stream.
func NewGovernor(cfg *config.Config, provider SnapshotProvider, writer SampleWriter, warnWriter WarningWriter, reportWriter ReportWriter, memProbe perf.MemoryProbe, rndProbe perf.RenderProbe) *Governor {
	if cfg == nil {
		cfg = config.Default()
	}
	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	g := &Governor{
		sessionID:    sessionID,
		cfg:          cfg,
		provider:     provider,
		writer:       writer,
		warnWriter:   warnWriter,
		reportWriter: reportWriter,
		heartbeat:    NewHeartbeat(cfg.KeepAliveInterval()),
		collectors:   NewCollectors(),
	}

	g.monitor = perf.NewMonitor(perf.Options{
		MemoryProbe:            memProbe,
		RenderProbe:            rndProbe,
		Notifier:               g.notify,
		LowFPSThreshold:        cfg.LowFPSThreshold,
		MemoryWarningThreshold: cfg.MemoryWarningThreshold,
	})

	seed := cfg.SamplingSeed
	var sampler *sampling.Engine
	if seed != 0 {
		sampler = sampling.NewWithSeed(seed)
	} else {
		sampler = sampling.New()
	}
	g.controller = lod.NewController(g.monitor, sampler, cluster.New(), sampling.Strategy(cfg.SamplingStrategy))
	g.reporter = report.NewGenerator(g.monitor)
	return g
}

// SessionID returns the identity tag stamped on every emitted row.
func (g *Governor) SessionID() string { return g.sessionID }

// Config returns the governor configuration.
func (g *Governor) Config() *config.Config { return g.cfg }

// Monitor exposes the performance monitor for direct host hooks.
func (g *Governor) Monitor() *perf.Monitor { return g.monitor }

// Controller exposes the LOD controller.
func (g *Governor) Controller() *lod.Controller { return g.controller }

// notify routes monitor warnings to the warning writer and the collectors.
func (g *Governor) notify(message, severity string) {
	g.collectors.ObserveWarning()
	if g.warnWriter == nil {
		return
	}
	_ = g.warnWriter.WriteWarning(perf.WarningRow{
		SessionID: g.sessionID,
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now().UTC(),
	})
}

// RecordRender is the per-frame hook the host render loop calls. It updates
// the rolling statistics, re-evaluates the tier when auto-LOD is enabled,
// and emits one sample row.
func (g *Governor) RecordRender(renderTimeMs float64) {
	g.mu.Lock()
	if g.destroyed {
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	g.monitor.RecordRender(renderTimeMs)

	snap := g.snapshot()
	if g.cfg.EnableAutoLOD {
		wanted := lod.DetermineTier(snap.NodeCount(), snap.EdgeCount())
		if wanted != g.controller.Current() {
			g.apply(snap, wanted)
		}
	}

	nodes, edges := g.VisibleCounts()
	row := perf.SampleRow{
		SessionID:    g.sessionID,
		RenderTimeMs: renderTimeMs,
		FPS:          g.monitor.AverageFPS(),
		NodeCount:    nodes,
		EdgeCount:    edges,
		LODLevel:     g.monitor.LODLevel(),
		Timestamp:    time.Now().UTC(),
	}
	g.collectors.ObserveSample(row)
	if g.writer != nil {
		_ = g.writer.WriteSample(row)
	}
}

// Optimize is the heartbeat entry point: probe memory once and, when
// pressure is above threshold, step the tier up and refresh the render set.
func (g *Governor) Optimize() bool {
	g.mu.Lock()
	if g.destroyed {
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()

	g.monitor.CheckMemory()
	if !g.controller.OptimizeMemory() {
		return false
	}
	snap := g.snapshot()
	g.apply(snap, g.controller.Current())
	return true
}

// Reduce materializes the render set for an explicit tier.
func (g *Governor) Reduce(tier lod.Tier) lod.Reduction {
	return g.apply(g.snapshot(), tier)
}

// ApplyAggressive forces the manual-override tier and refreshes the set.
func (g *Governor) ApplyAggressive() bool {
	ok := g.controller.ApplyAggressive()
	g.apply(g.snapshot(), g.controller.Current())
	return ok
}

// Reset restores full fidelity and clears any applied reduction.
func (g *Governor) Reset() bool {
	ok := g.controller.Reset()
	g.mu.Lock()
	g.reduction = nil
	g.mu.Unlock()
	return ok
}

// Report assembles a point-in-time performance report.
func (g *Governor) Report() report.Report {
	snap := g.snapshot()
	return g.reporter.Generate(snap.NodeCount(), snap.EdgeCount())
}

// Reduction returns the last applied render set, or nil at full fidelity.
func (g *Governor) Reduction() *lod.Reduction {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.reduction == nil {
		return nil
	}
	out := *g.reduction
	return &out
}

// VisibleCounts returns the element counts the renderer currently draws:
// the last reduction when one is applied, otherwise the full snapshot.
func (g *Governor) VisibleCounts() (nodes, edges int) {
	g.mu.Lock()
	red := g.reduction
	g.mu.Unlock()
	if red != nil {
		return len(red.Nodes), len(red.Edges)
	}
	snap := g.snapshot()
	return snap.NodeCount(), snap.EdgeCount()
}

// StartHeartbeat begins the recurring memory check. Each tick takes one
// memory reading, optimizes when warranted, and streams a report to the
// report writer when one is configured. Idempotent.
func (g *Governor) StartHeartbeat() {
	g.heartbeat.Start(func() {
		g.Optimize()
		if g.reportWriter != nil {
			_ = g.reportWriter.WriteReport(g.Report())
		}
	})
}

// StopHeartbeat cancels the recurring check. Safe when inactive.
func (g *Governor) StopHeartbeat() {
	g.heartbeat.Stop()
}

// HeartbeatActive reports whether the keep-alive tick is running.
func (g *Governor) HeartbeatActive() bool {
	return g.heartbeat.Active()
}

// Collectors exposes the Prometheus metric set for the admin server.
func (g *Governor) Collectors() *Collectors { return g.collectors }

// Destroy stops the heartbeat, clears all metrics, and leaves the governor
// inert: later calls are no-ops, never a crash.
func (g *Governor) Destroy() {
	g.heartbeat.Stop()
	g.mu.Lock()
	g.destroyed = true
	g.reduction = nil
	g.mu.Unlock()
	g.monitor.Destroy()
}

func (g *Governor) snapshot() graph.Snapshot {
	if g.provider == nil {
		return graph.Snapshot{}
	}
	return g.provider.Snapshot()
}

func (g *Governor) apply(snap graph.Snapshot, tier lod.Tier) lod.Reduction {
	red := g.controller.Apply(snap, tier)
	g.mu.Lock()
	if tier == lod.TierFull {
		g.reduction = nil
	} else {
		g.reduction = &red
	}
	g.mu.Unlock()
	return red
}

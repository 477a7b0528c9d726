// Monitor keeps rolling render-cost and memory statistics for the governor.
package perf

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Weight of the newest sample in the rolling render-time average. The
// average must update in O(1) without retaining sample history.
const ewmaAlpha = 0.2

// Warning is one recorded threshold crossing.
type Warning struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  string    `json:"severity"`
	Timestamp time.Time `json:"ts"`
}

// Metrics is a point-in-time copy of the monitor's counters.
type Metrics struct {
	RenderCount         int       `json:"render_count"`
	AverageRenderTimeMs float64   `json:"average_render_time_ms"`
	LastRenderTimeMs    float64   `json:"last_render_time_ms"`
	LODLevel            int       `json:"lod_level"`
	Warnings            []Warning `json:"warnings"`
}

// Notifier receives warnings as they are recorded. Optional.
type Notifier func(message, severity string)

// Options configures a Monitor. Zero values fall back to defaults; probes
// may be nil, in which case the matching capability reads as unavailable.
type Options struct {
	MemoryProbe            MemoryProbe
	RenderProbe            RenderProbe
	Notifier               Notifier
	LowFPSThreshold        float64
	MemoryWarningThreshold float64
}

// Default thresholds, sized for graphs in the tens of thousands of elements.
const (
	DefaultLowFPSThreshold        = 30.0
	DefaultMemoryWarningThreshold = 0.8
)

// Monitor owns rolling render statistics and memory warnings.
// All methods are safe for concurrent use by the render hook and the
// heartbeat goroutine, and none of them blocks or panics.
type Monitor struct {
	mu sync.Mutex

	memProbe MemoryProbe
	rndProbe RenderProbe
	notify   Notifier

	lowFPSThreshold  float64
	memWarnThreshold float64

	renderCount int
	avgRenderMs float64
	lastRender  float64
	lodLevel    int
	warnings    []Warning

	webglChecked bool
	webglCached  bool

	lastMemory *MemoryReading

	destroyed bool
	now       func() time.Time
}

// NewMonitor builds a monitor with zeroed counters.
func NewMonitor(opts Options) *Monitor {
	if opts.LowFPSThreshold <= 0 {
		opts.LowFPSThreshold = DefaultLowFPSThreshold
	}
	if opts.MemoryWarningThreshold <= 0 || opts.MemoryWarningThreshold >= 1 {
		opts.MemoryWarningThreshold = DefaultMemoryWarningThreshold
	}
	return &Monitor{
		memProbe:         opts.MemoryProbe,
		rndProbe:         opts.RenderProbe,
		notify:           opts.Notifier,
		lowFPSThreshold:  opts.LowFPSThreshold,
		memWarnThreshold: opts.MemoryWarningThreshold,
		now:              time.Now,
	}
}

// RecordRender folds one render duration into the rolling statistics.
// Negative inputs from a misbehaving render loop clamp to zero.
func (m *Monitor) RecordRender(renderTimeMs float64) {
	if renderTimeMs < 0 {
		renderTimeMs = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.renderCount++
	m.lastRender = renderTimeMs
	if m.renderCount == 1 {
		m.avgRenderMs = renderTimeMs
	} else {
		m.avgRenderMs += ewmaAlpha * (renderTimeMs - m.avgRenderMs)
	}
}

// AverageFPS derives frames per second from the rolling render time.
// Returns 0 before the first sample.
func (m *Monitor) AverageFPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.avgRenderMs <= 0 {
		return 0
	}
	return 1000 / m.avgRenderMs
}

// CheckWebGL probes the renderer for acceleration once and caches the
// answer. A missing or failed probe reads as false, never as an error.
func (m *Monitor) CheckWebGL() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return false
	}
	if m.webglChecked {
		return m.webglCached
	}
	m.webglChecked = true
	if m.rndProbe == nil {
		m.webglCached = false
		return false
	}
	c := m.rndProbe.Render()
	m.webglCached = c.Available && c.Accelerated
	return m.webglCached
}

// CheckMemory reads host memory pressure. It returns nil when the platform
// exposes no memory introspection. A reading above the warning threshold
// appends a warning; deciding what to do about it belongs to the LOD
// controller.
func (m *Monitor) CheckMemory() *MemoryReading {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed || m.memProbe == nil {
		return nil
	}
	c := m.memProbe.Memory()
	if !c.Available {
		return nil
	}
	reading := c.Reading
	m.lastMemory = &reading
	if reading.Ratio() > m.memWarnThreshold {
		m.warnLocked("memory usage above threshold", SeverityWarning)
	}
	out := reading
	return &out
}

// LastMemory returns the most recent reading without re-probing, or nil.
func (m *Monitor) LastMemory() *MemoryReading {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastMemory == nil {
		return nil
	}
	out := *m.lastMemory
	return &out
}

// MemoryWarningThreshold returns the configured used/limit warning ratio.
func (m *Monitor) MemoryWarningThreshold() float64 {
	return m.memWarnThreshold
}

// LowFPSThreshold returns the configured low-FPS boundary.
func (m *Monitor) LowFPSThreshold() float64 {
	return m.lowFPSThreshold
}

// Warn appends a warning record and invokes the notifier if present.
func (m *Monitor) Warn(message, severity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	m.warnLocked(message, severity)
}

func (m *Monitor) warnLocked(message, severity string) {
	m.warnings = append(m.warnings, Warning{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Timestamp: m.now().UTC(),
	})
	if m.notify != nil {
		m.notify(message, severity)
	}
}

// LODLevel returns the current fidelity level (0 = full fidelity).
func (m *Monitor) LODLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lodLevel
}

// SetLODLevel records a level change. Only the LOD controller's apply and
// reset operations call this.
func (m *Monitor) SetLODLevel(level int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return
	}
	if level < 0 {
		level = 0
	}
	m.lodLevel = level
}

// Metrics returns a copy of the current counters and warnings.
func (m *Monitor) Metrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	warnings := make([]Warning, len(m.warnings))
	copy(warnings, m.warnings)
	return Metrics{
		RenderCount:         m.renderCount,
		AverageRenderTimeMs: m.avgRenderMs,
		LastRenderTimeMs:    m.lastRender,
		LODLevel:            m.lodLevel,
		Warnings:            warnings,
	}
}

// Destroy clears all metrics and cached capability flags. The monitor stays
// callable afterwards but every operation degrades to a no-op.
func (m *Monitor) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = true
	m.renderCount = 0
	m.avgRenderMs = 0
	m.lastRender = 0
	m.lodLevel = 0
	m.warnings = nil
	m.webglChecked = false
	m.webglCached = false
	m.lastMemory = nil
}

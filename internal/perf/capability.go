package perf

// MemoryReading is one sample of host memory pressure, in consistent units
// (bytes for browser-style heaps, but the monitor only uses ratios).
type MemoryReading struct {
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
	Limit float64 `json:"limit"`
}

// Ratio returns used/limit, or 0 when the limit is unknown.
func (r MemoryReading) Ratio() float64 {
	if r.Limit <= 0 {
		return 0
	}
	return r.Used / r.Limit
}

// MemoryCapability is the result of probing for memory introspection.
// Unavailable platforms report Available=false; that is not an error.
type MemoryCapability struct {
	Available bool
	Reading   MemoryReading
}

// RenderCapability reports whether accelerated (WebGL-class) rendering is
// available on the host.
type RenderCapability struct {
	Available   bool
	Accelerated bool
}

// MemoryProbe supplies memory readings from the host environment.
type MemoryProbe interface {
	Memory() MemoryCapability
}

// RenderProbe answers whether the host renderer has acceleration.
type RenderProbe interface {
	Render() RenderCapability
}

// MemoryProbeFunc adapts a function to the MemoryProbe interface.
type MemoryProbeFunc func() MemoryCapability

// Memory implements MemoryProbe.
func (f MemoryProbeFunc) Memory() MemoryCapability { return f() }

// RenderProbeFunc adapts a function to the RenderProbe interface.
type RenderProbeFunc func() RenderCapability

// Render implements RenderProbe.
func (f RenderProbeFunc) Render() RenderCapability { return f() }

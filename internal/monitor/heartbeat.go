package monitor

import (
	"sync"
	"time"
)

// Heartbeat runs a recurring background check independent of render events.
// Start is idempotent and Stop is safe to call at any time, including when
// the heartbeat never ran; no timer outlives Stop.
type Heartbeat struct {
	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewHeartbeat creates a heartbeat with the given tick interval.
func NewHeartbeat(interval time.Duration) *Heartbeat {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Heartbeat{interval: interval}
}

// Start launches the recurring check, invoking fn on every tick.
// Calling Start while active is a no-op; a second timer is never created.
func (h *Heartbeat) Start(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stop != nil {
		return
	}
	h.stop = make(chan struct{})
	h.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-stop:
				return
			}
		}
	}(h.stop, h.done)
}

// Stop cancels the recurring check and waits for the tick goroutine to
// finish. Safe to call when already inactive.
func (h *Heartbeat) Stop() {
	h.mu.Lock()
	stop := h.stop
	done := h.done
	h.stop = nil
	h.done = nil
	h.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// Active reports whether the heartbeat is currently running.
func (h *Heartbeat) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stop != nil
}

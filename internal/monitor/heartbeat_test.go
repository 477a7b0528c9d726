package monitor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestHeartbeat_TicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	h := NewHeartbeat(10 * time.Millisecond)
	h.Start(func() { ticks.Add(1) })

	if !h.Active() {
		t.Fatal("heartbeat should be active after Start")
	}

	time.Sleep(60 * time.Millisecond)
	h.Stop()
	if h.Active() {
		t.Fatal("heartbeat should be inactive after Stop")
	}

	got := ticks.Load()
	if got == 0 {
		t.Fatal("expected at least one tick")
	}

	// No timer outlives Stop.
	time.Sleep(30 * time.Millisecond)
	if after := ticks.Load(); after != got {
		t.Errorf("ticks continued after Stop: %d -> %d", got, after)
	}
}

func TestHeartbeat_StartIsIdempotent(t *testing.T) {
	var ticks atomic.Int64
	h := NewHeartbeat(10 * time.Millisecond)
	h.Start(func() { ticks.Add(1) })
	h.Start(func() { ticks.Add(100) }) // must not spawn a second timer

	time.Sleep(35 * time.Millisecond)
	h.Stop()

	if got := ticks.Load(); got >= 100 {
		t.Errorf("second Start must be ignored, tick sum %d", got)
	}
}

func TestHeartbeat_StopWithoutStart(t *testing.T) {
	h := NewHeartbeat(time.Second)
	h.Stop()
	h.Stop()
	if h.Active() {
		t.Error("never-started heartbeat reports active")
	}
}

func TestHeartbeat_Restart(t *testing.T) {
	var ticks atomic.Int64
	h := NewHeartbeat(10 * time.Millisecond)

	h.Start(func() { ticks.Add(1) })
	h.Stop()

	h.Start(func() { ticks.Add(1) })
	if !h.Active() {
		t.Fatal("restart after Stop must work")
	}
	time.Sleep(30 * time.Millisecond)
	h.Stop()

	if ticks.Load() == 0 {
		t.Error("expected ticks after restart")
	}
}

func TestHeartbeat_DefaultInterval(t *testing.T) {
	h := NewHeartbeat(0)
	if h.interval != 30*time.Second {
		t.Errorf("default interval = %v, want 30s", h.interval)
	}
}

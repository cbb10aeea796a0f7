package timing

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitTick(t *testing.T, ch <-chan struct{}, d time.Duration, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(d):
		t.Fatal(msg)
	}
}

func TestRotatorAdvancesEachInterval(t *testing.T) {
	ticks := make(chan struct{}, 8)
	r := NewRotator(20*time.Millisecond, func() { ticks <- struct{}{} })
	r.Start()
	defer r.Stop()

	waitTick(t, ticks, time.Second, "first advance never fired")
	waitTick(t, ticks, time.Second, "second advance never fired")
}

func TestRotatorStopIsIdempotent(t *testing.T) {
	var n int32
	r := NewRotator(10*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	r.Start()
	r.Stop()
	r.Stop()
	if r.Running() {
		t.Fatal("rotator should be stopped")
	}
	got := atomic.LoadInt32(&n)
	time.Sleep(50 * time.Millisecond)
	if atomic.LoadInt32(&n) != got {
		t.Fatal("stopped rotator kept advancing")
	}
}

func TestRotatorResetDelaysNextFire(t *testing.T) {
	ticks := make(chan struct{}, 8)
	r := NewRotator(120*time.Millisecond, func() { ticks <- struct{}{} })
	r.Start()
	defer r.Stop()

	// Keep resetting well inside the interval: no firing should get through.
	for i := 0; i < 5; i++ {
		time.Sleep(40 * time.Millisecond)
		r.Reset()
	}
	select {
	case <-ticks:
		t.Fatal("advance fired despite continuous resets")
	default:
	}
	// Once resets cease, the next firing arrives a full interval later.
	waitTick(t, ticks, time.Second, "advance never fired after resets stopped")
}

func TestRotatorResetDuringCallbackKeepsSingleChain(t *testing.T) {
	const interval = 50 * time.Millisecond

	var fires int32
	entered := make(chan struct{})
	release := make(chan struct{})

	r := NewRotator(interval, func() {
		if atomic.AddInt32(&fires, 1) == 1 {
			entered <- struct{}{}
			<-release
		}
	})
	r.Start()

	// Reset while the first callback is still running. The superseded chain
	// must not re-arm on top of the one Reset started.
	<-entered
	r.Reset()
	close(release)

	time.Sleep(520 * time.Millisecond)
	r.Stop()
	got := atomic.LoadInt32(&fires)
	if got > 13 {
		t.Fatalf("two timer chains running: %d fires in 520ms at 50ms interval", got)
	}
	if got < 5 {
		t.Fatalf("rotation died after reset-during-callback: only %d fires", got)
	}
}

func TestRotatorResetWhileStoppedIsNoop(t *testing.T) {
	var n int32
	r := NewRotator(10*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	r.Reset()
	time.Sleep(40 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatal("reset on a stopped rotator must not schedule anything")
	}
}

func TestDelayFiresOnce(t *testing.T) {
	fired := make(chan struct{}, 2)
	After(15*time.Millisecond, func() { fired <- struct{}{} })
	waitTick(t, fired, time.Second, "delay never fired")
	select {
	case <-fired:
		t.Fatal("delay fired twice")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDelayStopIsIdempotent(t *testing.T) {
	var n int32
	d := After(30*time.Millisecond, func() { atomic.AddInt32(&n, 1) })
	if !d.Stop() {
		t.Fatal("first stop should cancel the pending run")
	}
	if d.Stop() {
		t.Fatal("second stop must be a no-op")
	}
	time.Sleep(80 * time.Millisecond)
	if atomic.LoadInt32(&n) != 0 {
		t.Fatal("cancelled delay still ran")
	}
}

func TestGateAdmitsOncePerInterval(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	base := time.Unix(0, 0)
	now := base
	g.now = func() time.Time { return now }

	if !g.Allow("a") {
		t.Fatal("first call must be admitted")
	}
	now = base.Add(50 * time.Millisecond)
	if g.Allow("a") {
		t.Fatal("call inside the interval must be rejected")
	}
	if !g.Allow("b") {
		t.Fatal("keys are throttled independently")
	}
	now = base.Add(150 * time.Millisecond)
	if !g.Allow("a") {
		t.Fatal("call after the interval must be admitted")
	}
}

func TestGateEvictsStaleKeys(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	base := time.Unix(0, 0)
	now := base
	g.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		g.Allow(string(rune('a' + i%26)))
	}
	now = base.Add(time.Second)
	g.Allow("fresh")
	if len(g.last) != 1 {
		t.Fatalf("expected stale keys swept, map still holds %d entries", len(g.last))
	}
}

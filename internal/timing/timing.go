// Package timing holds the cancellable timer primitives behind auto-advancing
// UI state: a repeating Rotator, a one-shot Delay, and a rate-limiting Gate.
package timing

import (
	"log"
	"sync"
	"time"
)

// Rotator fires an advance callback every interval until stopped. Reset
// re-bases the next firing to now+interval, so a manual advance and the
// automatic one never land back to back.
//
// The callback runs on the timer goroutine. A panic inside it is logged and
// ends the rotation instead of taking the process down.
type Rotator struct {
	mu       sync.Mutex
	interval time.Duration
	advance  func()
	timer    *time.Timer
	// gen invalidates in-flight firings: arm bumps it, and a firing only
	// re-arms while its captured generation is still current. Without it a
	// Reset landing mid-callback would leave two timer chains running.
	gen     uint64
	running bool
}

// NewRotator builds a stopped Rotator. advance must be non-nil.
func NewRotator(interval time.Duration, advance func()) *Rotator {
	if interval <= 0 {
		interval = time.Second
	}
	return &Rotator{interval: interval, advance: advance}
}

// Start schedules the first firing interval from now. Starting a running
// Rotator is a no-op.
func (r *Rotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.arm()
}

// Stop cancels the pending firing. Stopping an already-stopped Rotator is a
// no-op. A stopped Rotator can be started again.
func (r *Rotator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.running = false
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Reset pushes the next firing out to now+interval. It only has an effect
// while running.
func (r *Rotator) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	if r.timer != nil {
		r.timer.Stop()
	}
	r.arm()
}

// Running reports whether the Rotator is currently scheduled.
func (r *Rotator) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// arm schedules the next firing under a fresh generation. Caller holds r.mu.
func (r *Rotator) arm() {
	r.gen++
	gen := r.gen
	r.timer = time.AfterFunc(r.interval, func() { r.fire(gen) })
}

func (r *Rotator) fire(gen uint64) {
	r.mu.Lock()
	if !r.running || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	defer func() {
		if v := recover(); v != nil {
			log.Printf("timing: rotator callback panic: %v", v)
			r.Stop()
		}
	}()
	r.advance()

	r.mu.Lock()
	defer r.mu.Unlock()
	// a Reset or Stop during the callback supersedes this chain
	if r.running && gen == r.gen {
		r.arm()
	}
}

// Delay runs fn once after d. Stop cancels the pending run; stopping after
// the run, or twice, is a no-op.
type Delay struct {
	mu    sync.Mutex
	timer *time.Timer
	done  bool
}

// After schedules fn to run once after d and returns the handle.
func After(d time.Duration, fn func()) *Delay {
	dl := &Delay{}
	dl.timer = time.AfterFunc(d, func() {
		dl.mu.Lock()
		if dl.done {
			dl.mu.Unlock()
			return
		}
		dl.done = true
		dl.mu.Unlock()
		fn()
	})
	return dl
}

// Stop cancels the pending run if it has not fired yet. It reports whether
// the cancellation prevented a run.
func (d *Delay) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return false
	}
	d.done = true
	if d.timer != nil {
		d.timer.Stop()
	}
	return true
}

// Gate admits at most one call per key per interval. It backs the throttling
// of high-frequency scroll reports so per-event work runs only every ~100ms.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	sweepAt  time.Time
	now      func() time.Time
}

// NewGate builds a Gate with the given admission interval.
func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Gate{
		interval: interval,
		last:     map[string]time.Time{},
		now:      time.Now,
	}
}

// Allow reports whether a call for key may proceed now. The first call for a
// key is always admitted.
func (g *Gate) Allow(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	g.sweep(now)
	if prev, ok := g.last[key]; ok && now.Sub(prev) < g.interval {
		return false
	}
	g.last[key] = now
	return true
}

// sweep drops keys whose window has passed, at most once per interval, so
// the map stays bounded by the set of recently active keys. Caller holds
// g.mu.
func (g *Gate) sweep(now time.Time) {
	if now.Before(g.sweepAt) {
		return
	}
	for k, t := range g.last {
		if now.Sub(t) >= g.interval {
			delete(g.last, k)
		}
	}
	g.sweepAt = now.Add(g.interval)
}

// Package reviews drives the rotating guest-review banner. One Board serves
// the whole site: every visitor sees the same current review, advanced
// automatically on a fixed interval, with manual advances re-basing the
// timer so the banner never skips two entries back to back.
package reviews

import (
	"sync"
	"time"

	"villaserena.it/serena-web/internal/cycle"
	"villaserena.it/serena-web/internal/timing"
)

// DefaultInterval is the automatic rotation period.
const DefaultInterval = 8 * time.Second

// Board rotates through a fixed number of review entries.
type Board struct {
	mu      sync.Mutex
	ring    *cycle.Ring
	rotator *timing.Rotator
}

// NewBoard builds a stopped Board over n entries rotating every interval.
func NewBoard(n int, interval time.Duration) *Board {
	b := &Board{ring: cycle.New(n)}
	b.rotator = timing.NewRotator(interval, b.tick)
	return b
}

// Start begins automatic rotation. Starting a running board is a no-op.
func (b *Board) Start() { b.rotator.Start() }

// Stop halts automatic rotation. Idempotent.
func (b *Board) Stop() { b.rotator.Stop() }

// Current returns the index of the review on display. ok is false when the
// board has no entries.
func (b *Board) Current() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ring.Current()
}

// Advance moves to the next review manually and re-bases the automatic
// timer, so the following automatic advance happens a full interval from
// now. It returns the new index.
func (b *Board) Advance() (int, bool) {
	b.mu.Lock()
	b.ring.Next()
	i, ok := b.ring.Current()
	b.mu.Unlock()
	b.rotator.Reset()
	return i, ok
}

func (b *Board) tick() {
	b.mu.Lock()
	b.ring.Next()
	b.mu.Unlock()
}

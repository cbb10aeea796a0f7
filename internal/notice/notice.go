// Package notice holds transient page notices, such as the booking-form
// success popup, each auto-dismissed after a fixed lifetime.
package notice

import (
	"crypto/rand"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"villaserena.it/serena-web/internal/timing"
)

// Kind classifies a notice for styling.
type Kind string

const (
	Success Kind = "success"
	Info    Kind = "info"
)

// Notice is one visible message.
type Notice struct {
	ID      string
	Kind    Kind
	Message string
	posted  time.Time
}

// Center stores active notices and expires them after a TTL. Dismissing an
// already-expired notice is a no-op.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  map[string]Notice
	delays map[string]*timing.Delay
}

// NewCenter builds a Center whose notices live for ttl.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = 6 * time.Second
	}
	return &Center{
		ttl:    ttl,
		items:  map[string]Notice{},
		delays: map[string]*timing.Delay{},
	}
}

// Post adds a notice and schedules its auto-dismissal. It returns the
// notice id.
func (c *Center) Post(kind Kind, message string) string {
	id := newID()
	c.mu.Lock()
	c.items[id] = Notice{ID: id, Kind: kind, Message: message, posted: time.Now()}
	c.delays[id] = timing.After(c.ttl, func() { c.Dismiss(id) })
	c.mu.Unlock()
	return id
}

// Dismiss removes a notice and cancels its pending auto-dismissal. Unknown
// or already-dismissed ids are ignored.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	d := c.delays[id]
	delete(c.items, id)
	delete(c.delays, id)
	c.mu.Unlock()
	if d != nil {
		d.Stop()
	}
}

// Active returns the live notices, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	out := make([]Notice, 0, len(c.items))
	for _, n := range c.items {
		out = append(out, n)
	}
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].posted.Before(out[j].posted) })
	return out
}

// Shutdown cancels every pending auto-dismissal.
func (c *Center) Shutdown() {
	c.mu.Lock()
	delays := make([]*timing.Delay, 0, len(c.delays))
	for _, d := range c.delays {
		delays = append(delays, d)
	}
	c.delays = map[string]*timing.Delay{}
	c.items = map[string]Notice{}
	c.mu.Unlock()
	for _, d := range delays {
		d.Stop()
	}
}

func newID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "notice"
	}
	return hex.EncodeToString(b)
}

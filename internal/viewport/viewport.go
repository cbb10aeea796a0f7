// Package viewport makes scroll-driven decisions: whether the floating
// reviews banner (and back-to-top control) should be visible for a given
// scroll position, and how images should be loaded when the client may or
// may not support deferred observation.
package viewport

// Rect is a vertical slice of the page: a section's top offset and height,
// both in CSS pixels as measured by the client.
type Rect struct {
	Top    float64
	Height float64
}

// Middle returns the vertical midpoint of the rect.
func (r Rect) Middle() float64 {
	return r.Top + r.Height/2
}

// Gate decides banner visibility from two reference sections: the banner
// shows once the start section is half a viewport away, and hides once the
// scroll position passes the middle of the end section.
type Gate struct {
	Start Rect
	End   Rect
}

// Visible reports the gate's verdict for the current scroll offset and
// viewport height. It is a pure function of its inputs.
func (g Gate) Visible(scrollY, viewportHeight float64) bool {
	pastStart := scrollY >= g.Start.Top-viewportHeight/2
	beforeEndMiddle := scrollY < g.End.Middle()
	return pastStart && beforeEndMiddle
}

// Strategy is the image-loading mode resolved once at setup. When the client
// cannot observe element visibility, everything loads eagerly instead of
// failing.
type Strategy int

const (
	// Deferred defers offscreen images until they near the viewport.
	Deferred Strategy = iota
	// Eager loads every image immediately; the fallback when visibility
	// observation is unavailable.
	Eager
)

// ResolveStrategy picks the loading strategy from the client capability,
// detected once at setup rather than per image.
func ResolveStrategy(canObserve bool) Strategy {
	if canObserve {
		return Deferred
	}
	return Eager
}

// LoadingAttr returns the html loading attribute value for the strategy.
func (s Strategy) LoadingAttr() string {
	if s == Deferred {
		return "lazy"
	}
	return "eager"
}

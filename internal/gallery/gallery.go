// Package gallery models the image lightbox as a small state machine over a
// cyclic selection. Rendering stays with the caller; the lightbox only tracks
// which image is shown and whether the overlay is open.
package gallery

import "villaserena.it/serena-web/internal/cycle"

// Key names the keyboard inputs the lightbox responds to. Values match the
// browser KeyboardEvent.key strings the client reports.
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// Lightbox cycles through a fixed image collection while open. The key
// mapping is only live while the overlay is open; everything else is ignored.
type Lightbox struct {
	ring *cycle.Ring
	open bool
}

// New builds a closed Lightbox over n images.
func New(n int) *Lightbox {
	return &Lightbox{ring: cycle.New(n)}
}

// Open shows the overlay at image i. An out-of-range index is rejected and
// the lightbox stays closed. Opening over an empty collection is a no-op.
func (l *Lightbox) Open(i int) error {
	if l.ring.Len() == 0 {
		return nil
	}
	if err := l.ring.GoTo(i); err != nil {
		return err
	}
	l.open = true
	return nil
}

// Close hides the overlay. Closing an already-closed lightbox is a no-op.
func (l *Lightbox) Close() {
	l.open = false
}

// IsOpen reports whether the overlay is showing.
func (l *Lightbox) IsOpen() bool { return l.open }

// Next advances to the following image, wrapping at the end. Ignored while
// closed.
func (l *Lightbox) Next() {
	if !l.open {
		return
	}
	l.ring.Next()
}

// Prev steps back to the previous image, wrapping at the start. Ignored
// while closed.
func (l *Lightbox) Prev() {
	if !l.open {
		return
	}
	l.ring.Prev()
}

// Current returns the shown image index. ok is false while closed or when
// the collection is empty.
func (l *Lightbox) Current() (int, bool) {
	if !l.open {
		return 0, false
	}
	return l.ring.Current()
}

// HandleKey applies the keyboard mapping: Escape closes, the arrow keys
// navigate. It reports whether the key was consumed; every key is ignored
// while the overlay is closed.
func (l *Lightbox) HandleKey(k Key) bool {
	if !l.open {
		return false
	}
	switch k {
	case KeyEscape:
		l.Close()
	case KeyArrowLeft:
		l.Prev()
	case KeyArrowRight:
		l.Next()
	default:
		return false
	}
	return true
}

package cycle

import "errors"

// ErrOutOfRange is returned by GoTo when the requested index is outside the
// ring's range. GoTo never wraps or clamps.
var ErrOutOfRange = errors.New("cycle: index out of range")

// Ring is a cyclic selector over a fixed-length ordered collection. It holds
// only the current position; the items themselves stay with the caller.
// Next and Prev loop around the ends. A ring of length zero is empty and all
// movement on it is a no-op.
type Ring struct {
	length int
	index  int
}

// New returns a Ring over length items positioned at index 0. Lengths below
// zero are treated as zero.
func New(length int) *Ring {
	if length < 0 {
		length = 0
	}
	return &Ring{length: length}
}

// NewAt returns a Ring positioned at start.
func NewAt(length, start int) (*Ring, error) {
	r := New(length)
	if err := r.GoTo(start); err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of items the ring cycles over.
func (r *Ring) Len() int { return r.length }

// Current returns the selected index. ok is false for an empty ring.
func (r *Ring) Current() (index int, ok bool) {
	if r.length == 0 {
		return 0, false
	}
	return r.index, true
}

// Next advances the selection by one, wrapping to 0 past the end.
func (r *Ring) Next() {
	if r.length == 0 {
		return
	}
	r.index = (r.index + 1) % r.length
}

// Prev moves the selection back by one, wrapping to the last item before 0.
func (r *Ring) Prev() {
	if r.length == 0 {
		return
	}
	r.index = (r.index - 1 + r.length) % r.length
}

// GoTo jumps to index i. Indices outside [0, Len) yield ErrOutOfRange and
// leave the selection unchanged. On an empty ring GoTo is a no-op and
// returns nil, matching Next and Prev.
func (r *Ring) GoTo(i int) error {
	if r.length == 0 {
		return nil
	}
	if i < 0 || i >= r.length {
		return ErrOutOfRange
	}
	r.index = i
	return nil
}

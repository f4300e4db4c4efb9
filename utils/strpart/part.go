package strpart

// part.go implements Part, a window over a single owned byte buffer.
//
// Purpose:
// - Streaming readers accumulate bytes and hand out prefixes of what they hold. Copying the
//   accumulated buffer on every read costs O(total) per call.
// - A Part keeps the buffer and an inclusive [start, end] window over it, so handing out a
//   prefix or advancing past consumed bytes only moves two integers.
// - Mutations (Append, Clean, Clear, Recut) only ever touch the receiver. Bytes that another
//   Part considers in range are never rewritten.

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a window does not fit its backing buffer.
var ErrInvalidArgument = errors.New("invalid argument")

// none is the start/end value of the empty part.
const none = -1

// Part is an inclusive window [start, end] over backing, or empty.
//
// The part owns backing: callers that hand a slice to New or Append must not modify it
// afterwards, and slices returned by Bytes, Slice and Backing are read-only.
type Part struct {
	backing []byte
	// start is the first byte of the window, or -1 when the part is empty.
	start int
	// end is the last byte of the window (inclusive), or -1 when the part is empty.
	end int
}

// Empty returns a part holding zero bytes.
func Empty() *Part {
	return &Part{start: none, end: none}
}

// Whole returns a part spanning all of b, or an empty part if b is empty.
func Whole(b []byte) *Part {
	if len(b) == 0 {
		return Empty()
	}
	return &Part{backing: b, start: 0, end: len(b) - 1}
}

// New validates the window and returns a part over backing.
//
// start == -1 && end == -1 is the only encoding of the empty part. Every other window
// must satisfy 0 <= start <= end < len(backing).
func New(backing []byte, start, end int) (*Part, error) {
	if err := validate(backing, start, end); err != nil {
		return nil, err
	}
	if start == none {
		return Empty(), nil
	}
	return &Part{backing: backing, start: start, end: end}, nil
}

func validate(backing []byte, start, end int) error {
	if start == none {
		if end != none {
			return fmt.Errorf("%w: empty part must have end -1, got %d", ErrInvalidArgument, end)
		}
		return nil
	}
	switch {
	case start < 0:
		return fmt.Errorf("%w: start %d is negative", ErrInvalidArgument, start)
	case end < 0:
		return fmt.Errorf("%w: end %d is negative", ErrInvalidArgument, end)
	case start > end:
		return fmt.Errorf("%w: start %d is after end %d", ErrInvalidArgument, start, end)
	case end >= len(backing):
		return fmt.Errorf("%w: end %d is outside backing of length %d", ErrInvalidArgument, end, len(backing))
	}
	return nil
}

// Backing returns the whole backing buffer, including bytes outside the window.
func (p *Part) Backing() []byte { return p.backing }

// Start returns the first index of the window, or -1.
func (p *Part) Start() int { return p.start }

// End returns the last index of the window, or -1.
func (p *Part) End() int { return p.end }

// IsEmpty reports whether the part holds zero bytes.
func (p *Part) IsEmpty() bool { return p.start == none }

// Len returns the number of bytes in the window.
func (p *Part) Len() int {
	if p.IsEmpty() {
		return 0
	}
	return p.end - p.start + 1
}

// Slice returns the window as a sub-slice of the backing buffer. Nothing is copied.
func (p *Part) Slice() []byte {
	if p.IsEmpty() {
		return nil
	}
	return p.backing[p.start : p.end+1]
}

// Bytes materializes the window.
//
// When the window spans the entire backing buffer the buffer itself is returned;
// otherwise the window is copied.
func (p *Part) Bytes() []byte {
	if p.IsEmpty() {
		return []byte{}
	}
	if p.start == 0 && p.end+1 == len(p.backing) {
		return p.backing
	}
	out := make([]byte, p.Len())
	copy(out, p.backing[p.start:p.end+1])
	return out
}

// String returns the window as a string.
func (p *Part) String() string {
	return string(p.Slice())
}

// At returns the byte at absolute index i of the backing buffer.
func (p *Part) At(i int) byte {
	return p.backing[i]
}

// IndexByte returns the absolute index of the first c at or after from inside the
// window, or -1. A from before the window is clamped to its start.
func (p *Part) IndexByte(c byte, from int) int {
	if p.IsEmpty() || from > p.end {
		return -1
	}
	if from < p.start {
		from = p.start
	}
	i := bytes.IndexByte(p.backing[from:p.end+1], c)
	if i < 0 {
		return -1
	}
	return from + i
}

// Append extends the window with b and returns p.
//
// Three cases, checked in order:
//  1. p is empty: b becomes the backing buffer.
//  2. the window reaches the tail of the backing buffer: b is appended in place.
//  3. bytes follow the window: a new buffer is built from the window plus b.
func (p *Part) Append(b []byte) *Part {
	if len(b) == 0 {
		return p
	}
	switch {
	case p.IsEmpty():
		// Cap the adopted slice so a later in-place append reallocates instead of
		// writing into whatever the caller keeps after it.
		p.backing = b[:len(b):len(b)]
		p.start, p.end = 0, len(b)-1
	case p.end+1 == len(p.backing):
		p.backing = append(p.backing, b...)
		p.end += len(b)
	default:
		cur := p.Slice()
		joined := make([]byte, len(cur)+len(b))
		copy(joined, cur)
		copy(joined[len(cur):], b)
		p.backing = joined
		p.start, p.end = 0, len(joined)-1
	}
	return p
}

// Clean drops every byte outside the window so the backing buffer is exactly the window.
func (p *Part) Clean() *Part {
	if p.IsEmpty() {
		p.backing = nil
		return p
	}
	p.backing = p.Bytes()
	p.start, p.end = 0, len(p.backing)-1
	return p
}

// Clear resets p to the empty part and releases the backing buffer.
func (p *Part) Clear() *Part {
	p.backing = nil
	p.start, p.end = none, none
	return p
}

// Recut moves the window over the current backing buffer without touching its bytes.
// The new window is validated like New. On error p is unchanged.
func (p *Part) Recut(start, end int) error {
	if err := validate(p.backing, start, end); err != nil {
		return err
	}
	if start == none {
		p.Clear()
		return nil
	}
	p.start, p.end = start, end
	return nil
}

// WithEndpoints returns a new part over the same backing buffer with another window.
// p is not modified.
func (p *Part) WithEndpoints(start, end int) (*Part, error) {
	return New(p.backing, start, end)
}

// Equal reports whether the window holds exactly b. Nothing is allocated.
func (p *Part) Equal(b []byte) bool {
	if p.Len() != len(b) {
		return false
	}
	return bytes.Equal(p.Slice(), b)
}

// EqualPart reports whether p and o hold the same bytes.
func (p *Part) EqualPart(o *Part) bool {
	n := p.Len()
	if n != o.Len() {
		return false
	}
	if n == 0 {
		return true
	}
	if p.start == 0 || o.start == 0 {
		return bytes.Equal(p.Slice(), o.Slice())
	}
	for i := 0; i < n; i++ {
		if p.backing[p.start+i] != o.backing[o.start+i] {
			return false
		}
	}
	return true
}

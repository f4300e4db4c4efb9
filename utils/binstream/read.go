package binstream

import (
	"fmt"
	"io"

	"github.com/rony4d/go-binstream/utils/strpart"
)

// Predicate locates the end of a record in the accumulated buffer.
//
// buf is everything buffered so far and from is the absolute index where bytes appended
// since the previous call begin, so earlier bytes need not be scanned again. The
// predicate returns the absolute, inclusive stop index and true, or false when the
// buffer does not contain a stop yet. A stop outside [buf.Start(), buf.End()] makes
// ReadUntil fail with ErrPredicate.
type Predicate func(buf *strpart.Part, from int) (stop int, found bool)

// ReadBytes returns the next n bytes, or fewer if the source runs out first.
// It pulls only as many chunks as needed. After exhaustion it returns an empty part.
func (s *Stream) ReadBytes(n int) (*strpart.Part, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: read length %d must be positive", ErrInvalidArgument, n)
	}

	var last []byte
	for s.buf.Len() < n {
		chunk, err := s.pullChunk()
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			break
		}
		last = chunk
	}

	if s.buf.IsEmpty() {
		return strpart.Empty(), nil
	}
	stop := s.buf.Start() + min(n, s.buf.Len()) - 1
	return s.cutOffBuffer(stop, last), nil
}

// ReadUntil consumes bytes up to and including the stop index reported by p.
//
// When the source is exhausted before p finds a stop, ReadUntil returns ok == false and
// leaves the buffered bytes in place; they are still returned by later ReadBytes calls.
func (s *Stream) ReadUntil(p Predicate) (part *strpart.Part, ok bool, err error) {
	var (
		stop  int
		found bool
		last  []byte
	)
	if !s.buf.IsEmpty() {
		stop, found = p(s.buf, s.buf.Start())
	}
	for !found {
		chunk, err := s.pullChunk()
		if err != nil {
			return nil, false, err
		}
		if chunk == nil {
			return nil, false, nil
		}
		last = chunk
		// The chunk is always the tail of the buffer, whichever way Append stored it.
		stop, found = p(s.buf, s.buf.End()-len(chunk)+1)
	}

	if stop < s.buf.Start() || stop > s.buf.End() {
		return nil, false, fmt.Errorf("%w: stop %d, buffer [%d, %d]", ErrPredicate, stop, s.buf.Start(), s.buf.End())
	}
	return s.cutOffBuffer(stop, last), true, nil
}

// ReadUint reads an unsigned integer of width bytes (1, 2, 4 or 8) in the given order.
//
// If fewer than width bytes remain, they are consumed and ok is false.
func (s *Stream) ReadUint(width int, order Order) (v uint64, ok bool, err error) {
	if !validWidth(width) {
		return 0, false, fmt.Errorf("%w: unsupported integer width %d", ErrInvalidArgument, width)
	}
	part, err := s.ReadBytes(width)
	if err != nil {
		return 0, false, err
	}
	if part.Len() < width {
		return 0, false, nil
	}
	return order.Uint(part.Slice()), true, nil
}

// ReadUint8 reads one byte.
func (s *Stream) ReadUint8() (uint8, bool, error) {
	v, ok, err := s.ReadUint(1, BigEndian)
	return uint8(v), ok, err
}

// ReadUint16BE reads a big-endian uint16.
func (s *Stream) ReadUint16BE() (uint16, bool, error) {
	v, ok, err := s.ReadUint(2, BigEndian)
	return uint16(v), ok, err
}

// ReadUint16LE reads a little-endian uint16.
func (s *Stream) ReadUint16LE() (uint16, bool, error) {
	v, ok, err := s.ReadUint(2, LittleEndian)
	return uint16(v), ok, err
}

// ReadUint32BE reads a big-endian uint32.
func (s *Stream) ReadUint32BE() (uint32, bool, error) {
	v, ok, err := s.ReadUint(4, BigEndian)
	return uint32(v), ok, err
}

// ReadUint32LE reads a little-endian uint32.
func (s *Stream) ReadUint32LE() (uint32, bool, error) {
	v, ok, err := s.ReadUint(4, LittleEndian)
	return uint32(v), ok, err
}

// ReadUint64BE reads a big-endian uint64.
func (s *Stream) ReadUint64BE() (uint64, bool, error) {
	return s.ReadUint(8, BigEndian)
}

// ReadUint64LE reads a little-endian uint64.
func (s *Stream) ReadUint64LE() (uint64, bool, error) {
	return s.ReadUint(8, LittleEndian)
}

// Read implements io.Reader on top of ReadBytes.
func (s *Stream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	part, err := s.ReadBytes(len(p))
	if err != nil {
		return 0, err
	}
	if part.IsEmpty() {
		return 0, io.EOF
	}
	return copy(p, part.Slice()), nil
}

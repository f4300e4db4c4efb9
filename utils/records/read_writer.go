/*
This file implements record decoding on top of a binstream.Stream and the matching encoders.
Three record shapes are supported:
Lines: bytes up to and including a delimiter byte.
Frames: [Length][Payload], with the length stored as a fixed-width integer in either byte order.
Varints: compact base-128 integers, 7 data bits per byte, least significant group first.
The final byte carries the 0x80 STOP flag (reverse of the usual continuation flag), and the
encoding must be minimal.
*/
package records

import (
	"errors"
	"fmt"

	"github.com/rony4d/go-binstream/utils/binstream"
	"github.com/rony4d/go-binstream/utils/fast"
	"github.com/rony4d/go-binstream/utils/strpart"
)

// Standard errors for encoding validation.
var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding: data not packed minimally")
	ErrMalformedEncoding    = errors.New("malformed encoding: structure invalid or truncated")
	ErrTooLargeAlloc        = errors.New("too large allocation: decoded size exceeds limits")
)

// MaxAlloc is the frame size limit used when Frame is called with maxLen <= 0.
const MaxAlloc = 100 * 1024

// maxVarintLen is the longest encoding of a uint64: 9 full groups plus one bit.
const maxVarintLen = 10

const stopFlag = 0b10000000

// Reader decodes records from a Stream. Like the Stream, it is not safe for concurrent use.
type Reader struct {
	s *binstream.Stream
}

// NewReader wraps s.
func NewReader(s *binstream.Stream) *Reader {
	return &Reader{s: s}
}

// Stream returns the underlying stream, e.g. to drain a trailing partial record.
func (r *Reader) Stream() *binstream.Stream {
	return r.s
}

// Line returns the bytes up to and including the next delim.
// ok is false when the stream ends first; the unterminated tail stays buffered.
func (r *Reader) Line(delim byte) (line *strpart.Part, ok bool, err error) {
	return r.s.ReadUntil(func(buf *strpart.Part, from int) (int, bool) {
		i := buf.IndexByte(delim, from)
		return i, i >= 0
	})
}

// Frame reads a length prefix of width bytes and then that many payload bytes.
// A zero length yields an empty part. ok is false only when the stream is already
// at its end; a frame cut short anywhere after that is ErrMalformedEncoding.
func (r *Reader) Frame(width int, order binstream.Order, maxLen int) (payload *strpart.Part, ok bool, err error) {
	if width != 1 && width != 2 && width != 4 && width != 8 {
		return nil, false, fmt.Errorf("%w: unsupported length width %d", binstream.ErrInvalidArgument, width)
	}
	if maxLen <= 0 {
		maxLen = MaxAlloc
	}

	prefix, err := r.s.ReadBytes(width)
	if err != nil {
		return nil, false, err
	}
	if prefix.IsEmpty() {
		return nil, false, nil
	}
	if prefix.Len() < width {
		return nil, false, fmt.Errorf("%w: length prefix has %d of %d bytes", ErrMalformedEncoding, prefix.Len(), width)
	}

	size := order.Uint(prefix.Slice())
	if size > uint64(maxLen) {
		return nil, false, fmt.Errorf("%w: frame of %d bytes, limit %d", ErrTooLargeAlloc, size, maxLen)
	}
	if size == 0 {
		return strpart.Empty(), true, nil
	}

	payload, err = r.s.ReadBytes(int(size))
	if err != nil {
		return nil, false, err
	}
	if payload.Len() < int(size) {
		return nil, false, fmt.Errorf("%w: frame payload has %d of %d bytes", ErrMalformedEncoding, payload.Len(), size)
	}
	return payload, true, nil
}

// Varint decodes a compact integer.
// ok is false when the stream is at its end; a varint cut short by the end of the stream
// is ErrMalformedEncoding and its bytes stay buffered.
func (r *Reader) Varint() (v uint64, ok bool, err error) {
	part, found, err := r.s.ReadUntil(func(buf *strpart.Part, from int) (int, bool) {
		for i := from; i <= buf.End(); i++ {
			// Give up after maxVarintLen bytes, the decoder below rejects them.
			if buf.At(i)&stopFlag != 0 || i-buf.Start()+1 >= maxVarintLen {
				return i, true
			}
		}
		return 0, false
	})
	if err != nil {
		return 0, false, err
	}
	if !found {
		if n := r.s.Buffered(); n > 0 {
			return 0, false, fmt.Errorf("%w: varint truncated after %d bytes", ErrMalformedEncoding, n)
		}
		return 0, false, nil
	}

	b := part.Slice()
	if b[len(b)-1]&stopFlag == 0 {
		return 0, false, fmt.Errorf("%w: varint longer than %d bytes", ErrMalformedEncoding, maxVarintLen)
	}
	for i, c := range b {
		word := uint64(c &^ stopFlag)
		if i == maxVarintLen-1 && word > 1 {
			return 0, false, fmt.Errorf("%w: varint overflows 64 bits", ErrMalformedEncoding)
		}
		v |= word << uint(7*i)
	}
	// The last group may only be zero if it is the only one.
	if len(b) > 1 && b[len(b)-1] == stopFlag {
		return 0, false, ErrNonCanonicalEncoding
	}
	return v, true, nil
}

// Writer encodes records. The output is meant to be read back with Reader.
type Writer struct {
	w *fast.Writer
}

// NewWriter returns a Writer with a small preallocated buffer.
func NewWriter() *Writer {
	return &Writer{w: fast.NewWriter(make([]byte, 0, 200))}
}

// Line appends b followed by delim. b must not contain delim.
func (w *Writer) Line(b []byte, delim byte) {
	w.w.Write(b)
	w.w.WriteByte(delim)
}

// Frame appends the length of payload as a width-byte integer and then payload.
// It panics if the length does not fit in width bytes.
func (w *Writer) Frame(width int, order binstream.Order, payload []byte) {
	w.w.WriteUint(width, order, uint64(len(payload)))
	w.w.Write(payload)
}

// Varint appends v in compact form.
func (w *Writer) Varint(v uint64) {
	writeUint64Compact(w.w, v)
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.w.Bytes()
}

// writeUint64Compact writes 7 bits per byte, setting the STOP flag on the last one.
func writeUint64Compact(bytesW *fast.Writer, v uint64) {
	for {
		chunk := v & 0b01111111
		v >>= 7
		if v == 0 {
			bytesW.WriteByte(byte(chunk | stopFlag))
			return
		}
		bytesW.WriteByte(byte(chunk))
	}
}

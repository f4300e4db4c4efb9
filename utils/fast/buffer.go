package fast

// buffer.go provides a lightweight, non-thread-safe append writer for building binary data.
//
// Purpose:
// - Encoders for records, frames and fixed-width integers only ever append, so a plain slice
//   with append is all they need; bytes.Buffer's read side would go unused.
// - The result of Bytes is typically split into chunks and fed back through a binstream.Stream.

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/rony4d/go-binstream/utils/binstream"
)

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes (bulk write) to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteUint appends v as an unsigned integer of width bytes (1, 2, 4 or 8).
// It panics on any other width or when v does not fit; both are programming errors.
func (b *Writer) WriteUint(width int, order binstream.Order, v uint64) {
	if width != 1 && width != 2 && width != 4 && width != 8 {
		panic(fmt.Sprintf("fast: unsupported integer width %d", width))
	}
	if width < 8 && v>>(8*uint(width)) != 0 {
		panic(fmt.Sprintf("fast: value %d does not fit in %d bytes", v, width))
	}
	if order == binstream.LittleEndian {
		for i := 0; i < width; i++ {
			b.buf = append(b.buf, byte(v>>(8*uint(i))))
		}
		return
	}
	switch width {
	case 1:
		b.buf = append(b.buf, byte(v))
	case 2:
		b.buf = append(b.buf, bigendian.Uint16ToBytes(uint16(v))...)
	case 4:
		b.buf = append(b.buf, bigendian.Uint32ToBytes(uint32(v))...)
	case 8:
		b.buf = append(b.buf, bigendian.Uint64ToBytes(v)...)
	}
}

// Len returns the number of bytes written so far.
func (b *Writer) Len() int {
	return len(b.buf)
}

// Bytes returns the accumulated content of the Writer.
func (b *Writer) Bytes() []byte {
	return b.buf
}

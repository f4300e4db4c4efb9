package bits

// This package implements a bit-level Reader and Writer.
// It allows reading fields that are not aligned to 8-bit byte boundaries out of a byte stream.
//
// Use Case:
// - Packed flag words and small integers (e.g., a 3-bit type tag followed by a 13-bit length).
// - The Reader pulls bytes lazily from a binstream.Stream, so a bit field may span chunks.
//
// Bit order is LSB-first: the first bit written goes into bit 0 of the first byte.

import (
	"errors"
	"fmt"
)

// ErrWidth is returned for bit counts outside 0..64.
var ErrWidth = errors.New("bit width out of range")

type (
	// Array is a container for the underlying byte slice that holds the bitstream.
	Array struct {
		Bytes []byte
	}

	// Writer appends variable numbers of bits to an Array.
	Writer struct {
		*Array
		bitOffset int // 0-7: The index of the next bit to write in the current byte (Bytes[last])
	}

	// ByteSource yields bytes one at a time; ok is false at end of stream.
	// *binstream.Stream satisfies it.
	ByteSource interface {
		ReadUint8() (v uint8, ok bool, err error)
	}

	// Reader reads variable numbers of bits from a ByteSource.
	Reader struct {
		src ByteSource
		cur byte
		// bitOffset is the index of the next bit to read in cur; 8 means cur is used up.
		bitOffset int
	}
)

// NewWriter creates a new bitstream writer pointing to the given array.
func NewWriter(arr *Array) *Writer {
	return &Writer{
		Array: arr,
	}
}

// NewReader creates a bit reader pulling bytes from src.
func NewReader(src ByteSource) *Reader {
	return &Reader{src: src, bitOffset: 8}
}

// Write appends the lowest 'bits' bits of v to the bitstream.
// Example: Write(3, 5) -> writes binary '101' (3 bits).
func (a *Writer) Write(bits int, v uint64) {
	if bits < 0 || bits > 64 {
		panic(fmt.Sprintf("bits: cannot write %d bits", bits))
	}
	for bits > 0 {
		// At the start of a new byte, allocate a fresh zero byte.
		if a.bitOffset == 0 {
			a.Bytes = append(a.Bytes, 0)
		}
		free := 8 - a.bitOffset
		n := free
		if bits < n {
			n = bits
		}
		mask := uint64(1)<<uint(n) - 1
		a.Bytes[len(a.Bytes)-1] |= byte((v & mask) << uint(a.bitOffset))

		v >>= uint(n)
		bits -= n
		a.bitOffset = (a.bitOffset + n) % 8
	}
}

// Read extracts 'bits' bits from the stream and returns them as an integer.
//
// ok is false if the source ends first; the bits read up to that point are lost.
func (a *Reader) Read(bits int) (v uint64, ok bool, err error) {
	if bits < 0 || bits > 64 {
		return 0, false, fmt.Errorf("%w: %d", ErrWidth, bits)
	}
	for read := 0; read < bits; {
		if a.bitOffset == 8 {
			b, ok, err := a.src.ReadUint8()
			if err != nil || !ok {
				return 0, false, err
			}
			a.cur, a.bitOffset = b, 0
		}
		n := 8 - a.bitOffset
		if bits-read < n {
			n = bits - read
		}
		mask := uint64(1)<<uint(n) - 1
		v |= (uint64(a.cur) >> uint(a.bitOffset) & mask) << uint(read)

		read += n
		a.bitOffset += n
	}
	return v, true, nil
}

// Align drops the unread bits of the current byte so the next Read starts on a byte
// boundary. It returns the dropped bits.
func (a *Reader) Align() uint64 {
	if a.bitOffset == 8 {
		return 0
	}
	v := uint64(a.cur) >> uint(a.bitOffset)
	a.bitOffset = 8
	return v
}

package binstream

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

// Order is the byte order of a fixed-width integer.
type Order uint8

const (
	// BigEndian puts the most significant byte first.
	BigEndian Order = iota
	// LittleEndian puts the least significant byte first.
	LittleEndian
)

// String returns the short name of the byte order.
func (o Order) String() string {
	switch o {
	case BigEndian:
		return "be"
	case LittleEndian:
		return "le"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}

// ParseOrder parses "be"/"big" or "le"/"little".
func ParseOrder(name string) (Order, error) {
	switch name {
	case "be", "big":
		return BigEndian, nil
	case "le", "little":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("%w: unknown byte order %q", ErrInvalidArgument, name)
	}
}

// Uint decodes b as an unsigned integer of len(b) bytes (at most 8).
func (o Order) Uint(b []byte) uint64 {
	if o == LittleEndian {
		return leUint(b)
	}
	switch len(b) {
	case 2:
		return uint64(bigendian.BytesToUint16(b))
	case 4:
		return uint64(bigendian.BytesToUint32(b))
	case 8:
		return bigendian.BytesToUint64(b)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// leUint reassembles a little-endian integer one byte at a time.
func leUint(b []byte) uint64 {
	var v uint64
	for i, c := range b {
		v |= uint64(c) << uint(8*i)
	}
	return v
}

// validWidth reports whether width is one of the supported integer sizes in bytes.
func validWidth(width int) bool {
	switch width {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

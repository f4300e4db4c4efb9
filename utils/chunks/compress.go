package chunks

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how the bytes behind a reader source are compressed.
type Compression uint8

const (
	// CompressionNone reads the input as is.
	CompressionNone Compression = iota
	// CompressionZstd decodes a zstd stream.
	CompressionZstd
	// CompressionLZ4 decodes an LZ4 frame stream.
	CompressionLZ4
)

// String returns the name used on the command line and in config files.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name. The empty string means none.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// Reader is a ReaderSource over a possibly decompressed input. Close releases the
// decoder; it does not close the underlying reader.
type Reader struct {
	*ReaderSource
	close func()
}

// Open returns a chunk source yielding the decompressed contents of r in chunks of
// size bytes.
func Open(r io.Reader, c Compression, size int) (*Reader, error) {
	switch c {
	case CompressionNone:
		return &Reader{ReaderSource: FromReader(r, size)}, nil

	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return &Reader{ReaderSource: FromReader(dec, size), close: dec.Close}, nil

	case CompressionLZ4:
		return &Reader{ReaderSource: FromReader(lz4.NewReader(r), size)}, nil

	default:
		return nil, fmt.Errorf("unsupported compression: %d", c)
	}
}

// Close releases decoder resources.
func (r *Reader) Close() error {
	if r.close != nil {
		r.close()
		r.close = nil
	}
	return nil
}

// Package chunks provides chunk sources for binstream.Stream: fixed chunk lists, slices
// split into parts, functions, and io.Readers (optionally compressed).
package chunks

import (
	"io"

	"github.com/rony4d/go-binstream/utils/binstream"
)

// DefaultChunkSize is used when a reader source is created with a non-positive size.
const DefaultChunkSize = 64 * 1024

var (
	_ binstream.Source = (*SliceSource)(nil)
	_ binstream.Source = (*ReaderSource)(nil)
	_ binstream.Source = Func(nil)
)

// SliceSource yields a fixed list of chunks.
type SliceSource struct {
	chunks [][]byte
}

// Slice returns a source yielding chunks in order. Empty chunks are skipped because an
// empty chunk would end the stream.
func Slice(chunks ...[]byte) *SliceSource {
	s := &SliceSource{chunks: make([][]byte, 0, len(chunks))}
	for _, c := range chunks {
		if len(c) > 0 {
			s.chunks = append(s.chunks, c)
		}
	}
	return s
}

// Split returns a source yielding data in parts of size bytes; the last part may be
// shorter. Each part is capped so appending to it never spills into the next one.
func Split(data []byte, size int) *SliceSource {
	if size <= 0 {
		size = DefaultChunkSize
	}
	s := &SliceSource{}
	for len(data) > 0 {
		n := size
		if n > len(data) {
			n = len(data)
		}
		s.chunks = append(s.chunks, data[:n:n])
		data = data[n:]
	}
	return s
}

// Next implements binstream.Source.
func (s *SliceSource) Next() ([]byte, error) {
	if len(s.chunks) == 0 {
		return nil, io.EOF
	}
	c := s.chunks[0]
	s.chunks[0] = nil
	s.chunks = s.chunks[1:]
	return c, nil
}

// Func adapts a function to binstream.Source.
type Func func() ([]byte, error)

// Next implements binstream.Source.
func (f Func) Next() ([]byte, error) {
	return f()
}

// ReaderSource yields the contents of an io.Reader in chunks of up to size bytes.
type ReaderSource struct {
	r    io.Reader
	size int
	// err is returned by every Next call once the reader has failed or ended.
	err error
}

// FromReader returns a source reading r in chunks of size bytes. Every chunk is a fresh
// allocation, so the stream may keep it as long as it likes.
func FromReader(r io.Reader, size int) *ReaderSource {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ReaderSource{r: r, size: size}
}

// Next implements binstream.Source. Data read together with an error is returned first;
// the error follows on the next call.
func (s *ReaderSource) Next() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	buf := make([]byte, s.size)
	n, err := io.ReadFull(s.r, buf)
	switch err {
	case nil:
		return buf, nil
	case io.EOF:
		s.err = io.EOF
		return nil, io.EOF
	case io.ErrUnexpectedEOF:
		s.err = io.EOF
		return buf[:n], nil
	}
	if n == 0 {
		return nil, err
	}
	s.err = err
	return buf[:n], nil
}

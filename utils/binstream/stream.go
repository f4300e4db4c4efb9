// Package binstream reads binary data from a lazily pulled sequence of byte chunks.
//
// A Stream pulls chunks from a Source only when a read needs more bytes than it has
// buffered. Reads hand out strpart.Part windows over the buffered memory instead of
// copying it: after a cut the stream either advances its window over the same buffer or
// adopts the tail of the most recently pulled chunk as its new buffer, so a read costs
// O(newly pulled bytes) rather than O(everything buffered).
//
// End of stream is never an error. It shows up as a short Part, an empty Part, or an
// ok == false result.
package binstream

import (
	"errors"
	"io"

	"github.com/rony4d/go-binstream/utils/strpart"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidArgument is returned for malformed call arguments such as a
	// non-positive read length. It is the same sentinel strpart uses.
	ErrInvalidArgument = strpart.ErrInvalidArgument
	// ErrPredicate is returned when a ReadUntil predicate reports a stop index outside
	// the buffer it was given. It signals a bug in the predicate, not a stream condition.
	ErrPredicate = errors.New("predicate returned stop index outside buffer")
)

// Source yields the chunks a Stream consumes.
//
// Next returns the next non-empty chunk, or io.EOF once there are no more. A zero-length
// chunk with a nil error is treated as io.EOF. Any other error is returned unchanged to
// the caller of the read that triggered the pull. Sources are single-pass: a chunk is
// pulled at most once, and after yielding it the source must not modify its bytes.
type Source interface {
	Next() ([]byte, error)
}

// Option configures a Stream.
type Option func(*Stream)

// WithLogger sets the logger used to trace chunk pulls at debug level.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Stream) {
		s.log = log
	}
}

// Stream is a cursor over the chunks of a Source.
//
// A Stream is not safe for concurrent use. Parts returned by its reads stay valid and
// unchanged whatever the stream does afterwards.
type Stream struct {
	// buf holds bytes that were pulled but not yet handed to a caller.
	buf *strpart.Part
	src Source
	// exhausted is set once src reports io.EOF; src is never pulled again after that.
	exhausted bool
	// pulled counts bytes taken from src, for logging.
	pulled uint64

	log logrus.FieldLogger
}

// New returns a stream over src. Nothing is pulled until the first read.
func New(src Source, opts ...Option) *Stream {
	s := &Stream{
		buf: strpart.Empty(),
		src: src,
		log: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffered returns the number of pulled bytes not yet returned by a read.
func (s *Stream) Buffered() int {
	return s.buf.Len()
}

// Done reports whether the source is exhausted and every byte has been read.
func (s *Stream) Done() bool {
	return s.exhausted && s.buf.IsEmpty()
}

// pullChunk pulls the next chunk, appends it to the buffer and returns it.
// It returns nil, nil once the source is exhausted.
func (s *Stream) pullChunk() ([]byte, error) {
	if s.exhausted {
		return nil, nil
	}
	chunk, err := s.src.Next()
	if err == io.EOF || (err == nil && len(chunk) == 0) {
		s.exhausted = true
		s.log.WithField("pulled", s.pulled).Debug("Chunk source exhausted")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	chunk = chunk[:len(chunk):len(chunk)]
	s.buf.Append(chunk)
	s.pulled += uint64(len(chunk))
	s.log.WithFields(logrus.Fields{"size": len(chunk), "buffered": s.buf.Len()}).Debug("Pulled chunk")
	return chunk, nil
}

// cutOffBuffer splits the buffer after the absolute index stop. It returns
// [start, stop] and keeps [stop+1, end] buffered.
//
// last is the chunk most recently appended to the buffer, if the current read pulled
// one. Its bytes are the tail of the buffer, so when the remainder lies inside it the
// chunk itself becomes the new backing and nothing is copied.
func (s *Stream) cutOffBuffer(stop int, last []byte) *strpart.Part {
	buf := s.buf
	head, err := buf.WithEndpoints(buf.Start(), stop)
	if err != nil {
		// Callers check stop against the buffer first.
		panic(err)
	}

	if stop == buf.End() {
		buf.Clear()
		return head
	}

	if len(last) > 0 {
		chunkStart := buf.End() + 1 - len(last)
		if off := stop + 1 - chunkStart; off >= 0 {
			rest, err := strpart.New(last, off, len(last)-1)
			if err == nil {
				s.buf = rest
				return head
			}
		}
	}

	if err := buf.Recut(stop+1, buf.End()); err != nil {
		panic(err)
	}
	// The consumed prefix stays in the backing buffer until it outweighs the live window.
	if buf.Start() > buf.Len() {
		buf.Clean()
	}
	return head
}

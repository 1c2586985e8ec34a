// Completion: 100% - Module complete

// Package stream provides the buffered byte reader the lexer pulls from.
//
// The reader serves one byte at a time out of a fixed-size buffer that is
// refilled from the underlying file. It supports relative seeking: moves
// inside the buffered window only adjust the cursor, moves outside of it
// seek the file and refill.
package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// VerboseMode enables refill and seek messages on stderr
var VerboseMode bool

const (
	DefaultBufferSize = 4096
	MaxBufferSize     = 16 * 1024 * 1024
)

var (
	// ErrClosed is returned when seeking a reader that reached end of input
	ErrClosed = errors.New("stream: reader is closed")

	// ErrSeekRange is returned for a seek before the start of the file
	ErrSeekRange = errors.New("stream: seek before start of input")
)

// Reader is a buffered, seekable byte reader.
// Once the reader is closed every ReadByte returns io.EOF without doing I/O.
type Reader struct {
	src    io.ReadSeeker
	closer io.Closer
	buf    []byte
	n      int   // bytes filled in buf
	pos    int   // cursor within buf[:n]
	base   int64 // file offset of buf[0]
	closed bool
	err    error // sticky non-EOF read error
	fills  int
}

// Open opens the file at path and performs the first buffer fill
func Open(path string, size int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if err := adviseSequential(f); err != nil && VerboseMode {
		fmt.Fprintf(os.Stderr, "stream: fadvise %s: %v\n", path, err)
	}
	r, err := New(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// New wraps rs and performs the first buffer fill.
// A size of 0 or less selects DefaultBufferSize.
func New(rs io.ReadSeeker, size int) (*Reader, error) {
	if size <= 0 {
		size = DefaultBufferSize
	}
	if size > MaxBufferSize {
		size = MaxBufferSize
	}
	base, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	r := &Reader{
		src:  rs,
		buf:  make([]byte, size),
		base: base,
	}
	if err := r.fill(); err != nil && err != io.EOF {
		return nil, err
	}
	return r, nil
}

// fill replaces the buffer contents with the next chunk of the file
func (r *Reader) fill() error {
	r.base += int64(r.n)
	r.pos = 0
	n, err := io.ReadAtLeast(r.src, r.buf, 1)
	r.n = n
	r.fills++
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "stream: refill #%d at offset %d: %d bytes\n", r.fills, r.base, n)
	}
	switch {
	case err == io.EOF:
		r.closed = true
		return io.EOF
	case err != nil:
		r.err = fmt.Errorf("stream: read: %w", err)
		return r.err
	}
	return nil
}

// ReadByte returns the next byte, or io.EOF once the input is exhausted
func (r *Reader) ReadByte() (byte, error) {
	if r.closed {
		return 0, io.EOF
	}
	if r.err != nil {
		return 0, r.err
	}
	if r.pos >= r.n {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	c := r.buf[r.pos]
	r.pos++
	return c, nil
}

// UnreadByte moves the cursor back by one byte
func (r *Reader) UnreadByte() error {
	return r.Seek(-1)
}

// Seek moves the cursor by a signed offset relative to the next byte.
// Targets inside the buffered window are served from memory. Other targets
// seek the file and refill, which invalidates positions computed earlier.
func (r *Reader) Seek(offset int) error {
	if r.closed {
		return ErrClosed
	}
	if r.err != nil {
		return r.err
	}
	target := r.pos + offset
	if target >= 0 && target <= r.n {
		r.pos = target
		return nil
	}
	abs := r.base + int64(target)
	if abs < 0 {
		return ErrSeekRange
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "stream: seek outside window to offset %d\n", abs)
	}
	if _, err := r.src.Seek(abs, io.SeekStart); err != nil {
		r.err = fmt.Errorf("stream: seek: %w", err)
		return r.err
	}
	r.base = abs
	r.n = 0
	if err := r.fill(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// Offset returns the file offset of the next byte to be read
func (r *Reader) Offset() int64 {
	return r.base + int64(r.pos)
}

// Closed reports whether the end of input has been reached
func (r *Reader) Closed() bool {
	return r.closed
}

// Fills returns how many times the buffer has been filled from the source
func (r *Reader) Fills() int {
	return r.fills
}

// Close releases the file opened by Open. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// Completion: 100% - Module complete

// Package scratch implements the growable byte buffer used while a single
// token is being scanned.
package scratch

import (
	"fmt"
	"os"
)

// VerboseMode enables lifecycle messages on stderr
var VerboseMode bool

const (
	// InitialCapacity is the capacity given to an empty buffer on first append
	InitialCapacity = 32

	// Growth is 3/2: new capacity = old + old/2
	growthNumerator   = 3
	growthDenominator = 2
)

// Buffer is a resizable byte accumulator with explicit lifecycle management.
// Invariant: 0 <= Len() <= Cap(). Once Compact has been called the buffer is
// committed and further appends panic until Reset.
type Buffer struct {
	data      []byte
	committed bool
	name      string // For debugging
}

// New creates an empty Buffer with a name for debugging
func New(name string) *Buffer {
	return &Buffer{name: name}
}

// Len returns the number of bytes appended so far
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the current storage capacity
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Append adds one byte, growing the storage by 1.5x when it is full.
// Panics if the buffer is committed.
func (b *Buffer) Append(c byte) {
	b.mustNotBeCommitted()
	if len(b.data) == cap(b.data) {
		b.grow(len(b.data) + 1)
	}
	b.data = append(b.data, c)
}

// Write appends p. It always returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mustNotBeCommitted()
	if need := len(b.data) + len(p); need > cap(b.data) {
		b.grow(need)
	}
	b.data = append(b.data, p...)
	return len(p), nil
}

// grow raises the capacity to at least need
func (b *Buffer) grow(need int) {
	newCap := cap(b.data)
	if newCap < InitialCapacity {
		newCap = InitialCapacity
	}
	for newCap < need {
		newCap = newCap * growthNumerator / growthDenominator
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Compact shrinks the storage to exactly Len() bytes and commits the buffer.
// It is called once per token, right before the bytes are copied into the arena.
func (b *Buffer) Compact() {
	if cap(b.data) != len(b.data) {
		exact := make([]byte, len(b.data))
		copy(exact, b.data)
		b.data = exact
	}
	if VerboseMode {
		fmt.Fprintf(os.Stderr, "scratch(%s): compacted to %d bytes\n", b.name, len(b.data))
	}
	b.committed = true
}

// Bytes returns the buffer contents. The slice is only valid until the next
// Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Committed reports whether Compact has been called since the last Reset
func (b *Buffer) Committed() bool {
	return b.committed
}

// Reset empties and uncommits the buffer so it can be reused.
// The current storage is kept.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.committed = false
}

func (b *Buffer) mustNotBeCommitted() {
	if b.committed {
		panic(fmt.Sprintf("scratch(%s): cannot write to committed buffer", b.name))
	}
}

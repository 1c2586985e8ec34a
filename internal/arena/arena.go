// Completion: 100% - Module complete

// Package arena provides the bump allocator that owns all token text for
// one lexing session.
//
// Memory is handed out from fixed-capacity blocks. Allocations never
// straddle blocks and are never released one by one: the whole arena is
// torn down at once with Destroy.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// Default block sizes
const (
	DefaultBlockSize = 64 * 1024 // 64 KB per block
	MinBlockSize     = 256       // smallest block New will create
	MaxBlockSize     = 64 * 1024 * 1024
)

var (
	// ErrDestroyed is returned by Alloc after Destroy has been called
	ErrDestroyed = errors.New("arena: allocation from destroyed arena")

	// ErrOversized is returned when a single request can not fit in one block
	ErrOversized = errors.New("arena: request larger than block size")
)

// Arena is a block-linked bump allocator.
// Alignment is byte granularity only; callers must not store fixed-width
// numeric values in arena memory expecting natural alignment.
type Arena struct {
	blocks    [][]byte // owned blocks, oldest first
	cur       []byte   // the newest block
	off       int      // bump cursor within cur
	blockSize int
	used      int // bytes handed out
	wasted    int // unused tail bytes of retired blocks
	destroyed bool
}

// Stats describes the memory held by an arena
type Stats struct {
	Blocks    int
	BlockSize int
	Used      int
	Wasted    int
}

func (s Stats) String() string {
	return fmt.Sprintf("arena: %d block(s) of %d bytes, %d used, %d wasted",
		s.Blocks, s.BlockSize, s.Used, s.Wasted)
}

// New creates an arena with the given block size.
// A size of 0 selects DefaultBlockSize. Sizes are clamped to
// [MinBlockSize, MaxBlockSize].
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}
	if blockSize > MaxBlockSize {
		blockSize = MaxBlockSize
	}
	return &Arena{blockSize: blockSize}
}

// BlockSize returns the capacity of every block in the arena
func (a *Arena) BlockSize() int {
	return a.blockSize
}

// Alloc returns n bytes of zeroed arena memory.
// The returned slice has a capacity of exactly n, so appending to it
// reallocates instead of overwriting the next allocation.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if a.destroyed {
		return nil, ErrDestroyed
	}
	if n < 0 {
		return nil, fmt.Errorf("arena: negative allocation size %d", n)
	}
	if n > a.blockSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrOversized, n, a.blockSize)
	}
	if a.cur == nil || a.off+n > len(a.cur) {
		a.link()
	}
	p := a.cur[a.off : a.off+n : a.off+n]
	a.off += n
	a.used += n
	return p, nil
}

// link retires the current block and starts a fresh one
func (a *Arena) link() {
	if a.cur != nil {
		a.wasted += len(a.cur) - a.off
	}
	a.cur = make([]byte, a.blockSize)
	a.blocks = append(a.blocks, a.cur)
	a.off = 0
}

// Bytes copies b into the arena and returns the arena-backed copy
func (a *Arena) Bytes(b []byte) ([]byte, error) {
	p, err := a.Alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(p, b)
	return p, nil
}

// String copies b into the arena and returns a string view of the copy.
// The string stays valid for as long as the caller keeps the arena alive.
func (a *Arena) String(b []byte) (string, error) {
	if len(b) == 0 {
		if a.destroyed {
			return "", ErrDestroyed
		}
		return "", nil
	}
	p, err := a.Bytes(b)
	if err != nil {
		return "", err
	}
	return unsafe.String(&p[0], len(p)), nil
}

// Destroy releases every block. Any memory previously returned by the
// arena must no longer be used. Calling Destroy twice is a no-op.
func (a *Arena) Destroy() {
	for i := range a.blocks {
		a.blocks[i] = nil
	}
	a.blocks = nil
	a.cur = nil
	a.off = 0
	a.destroyed = true
}

// Destroyed reports whether Destroy has been called
func (a *Arena) Destroyed() bool {
	return a.destroyed
}

// Stats returns a snapshot of the arena's memory usage
func (a *Arena) Stats() Stats {
	return Stats{
		Blocks:    len(a.blocks),
		BlockSize: a.blockSize,
		Used:      a.used,
		Wasted:    a.wasted,
	}
}

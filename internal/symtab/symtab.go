// Completion: 100% - Module complete

// Package symtab implements the name table used to intern identifier text.
//
// Collision policy: separate chaining. Each slot holds one entry inline and
// further entries with the same slot are appended to a linked chain. The
// table doubles its slot count when the load factor exceeds 0.75.
package symtab

import (
	"fmt"
	"hash/fnv"

	"github.com/xyproto/ylex/internal/arena"
)

const (
	minSize       = 16
	maxLoadFactor = 0.75
)

// Table maps byte strings to a single shared string instance
type Table struct {
	buckets []bucket
	size    int
	count   int
}

type bucket struct {
	hash     uint64
	key      string
	occupied bool
	next     *bucket
}

// New creates a table with at least initialSize slots
func New(initialSize int) *Table {
	if initialSize < minSize {
		initialSize = minSize
	}
	return &Table{
		buckets: make([]bucket, initialSize),
		size:    initialSize,
	}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}

func (t *Table) lookup(h uint64, key []byte) (string, bool) {
	b := &t.buckets[h%uint64(t.size)]
	if !b.occupied {
		return "", false
	}
	for ; b != nil; b = b.next {
		if b.hash == h && b.key == string(key) {
			return b.key, true
		}
	}
	return "", false
}

// Intern returns the shared copy of key, copying key into the arena the
// first time it is seen. A table must only be used with one arena; once
// that arena is destroyed every call fails, including repeated keys.
func (t *Table) Intern(key []byte, a *arena.Arena) (string, error) {
	if a.Destroyed() {
		return "", arena.ErrDestroyed
	}
	h := hashBytes(key)
	if s, ok := t.lookup(h, key); ok {
		return s, nil
	}
	s, err := a.String(key)
	if err != nil {
		return "", err
	}
	t.insert(h, s)
	return s, nil
}

func (t *Table) insert(h uint64, s string) {
	t.place(h, s)
	t.count++
	if float64(t.count)/float64(t.size) > maxLoadFactor {
		t.resize()
	}
}

// place stores an entry without touching the count
func (t *Table) place(h uint64, s string) {
	b := &t.buckets[h%uint64(t.size)]
	if !b.occupied {
		*b = bucket{hash: h, key: s, occupied: true}
		return
	}
	for b.next != nil {
		b = b.next
	}
	b.next = &bucket{hash: h, key: s, occupied: true}
}

// resize doubles the slot count and rehashes all entries
func (t *Table) resize() {
	old := t.buckets
	t.size *= 2
	t.buckets = make([]bucket, t.size)
	for i := range old {
		if !old[i].occupied {
			continue
		}
		for b := &old[i]; b != nil; b = b.next {
			t.place(b.hash, b.key)
		}
	}
}

// Count returns the number of distinct strings in the table
func (t *Table) Count() int {
	return t.count
}

// Keys returns every interned string in slot order
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.count)
	for i := range t.buckets {
		if !t.buckets[i].occupied {
			continue
		}
		for b := &t.buckets[i]; b != nil; b = b.next {
			keys = append(keys, b.key)
		}
	}
	return keys
}

func (t *Table) String() string {
	return fmt.Sprintf("symtab.Table{count: %d, size: %d}", t.count, t.size)
}

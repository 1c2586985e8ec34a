package symtab

import (
	"fmt"
	"sort"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyproto/ylex/internal/arena"
)

func TestTableIntern(t *testing.T) {
	a := arena.New(0)
	tab := New(16)
	for _, k := range []string{"alpha", "beta", "alpha"} {
		s, err := tab.Intern([]byte(k), a)
		require.NoError(t, err)
		assert.Equal(t, k, s)
	}

	s, ok := tab.lookup(hashBytes([]byte("beta")), []byte("beta"))
	assert.True(t, ok)
	assert.Equal(t, "beta", s)

	_, ok = tab.lookup(hashBytes([]byte("gamma")), []byte("gamma"))
	assert.False(t, ok)
	assert.Equal(t, 2, tab.Count())
}

func TestTableInternSharesStorage(t *testing.T) {
	a := arena.New(0)
	tab := New(0)

	first, err := tab.Intern([]byte("name"), a)
	require.NoError(t, err)
	used := a.Stats().Used

	second, err := tab.Intern([]byte("name"), a)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Same(t, unsafe.StringData(first), unsafe.StringData(second))
	assert.Equal(t, used, a.Stats().Used, "second intern must not allocate")
}

func TestTableCollisionAndResize(t *testing.T) {
	a := arena.New(0)
	tab := New(4) // Small size to force collisions

	for i := 0; i < 200; i++ {
		_, err := tab.Intern([]byte(fmt.Sprintf("id%d", i)), a)
		require.NoError(t, err)
	}
	for i := 0; i < 200; i++ {
		key := fmt.Sprintf("id%d", i)
		s, ok := tab.lookup(hashBytes([]byte(key)), []byte(key))
		require.True(t, ok, key)
		assert.Equal(t, key, s)
	}
	assert.Equal(t, 200, tab.Count())
	assert.LessOrEqual(t, float64(tab.Count())/float64(tab.size), maxLoadFactor)
}

func TestTableKeys(t *testing.T) {
	a := arena.New(0)
	tab := New(16)
	for _, k := range []string{"c", "a", "b", "a"} {
		_, err := tab.Intern([]byte(k), a)
		require.NoError(t, err)
	}
	keys := tab.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestTableInternDestroyedArena(t *testing.T) {
	a := arena.New(0)
	a.Destroy()
	_, err := New(0).Intern([]byte("x"), a)
	assert.ErrorIs(t, err, arena.ErrDestroyed)
}

func TestTableInternKnownKeyAfterDestroy(t *testing.T) {
	a := arena.New(0)
	tab := New(0)
	_, err := tab.Intern([]byte("x"), a)
	require.NoError(t, err)

	a.Destroy()
	_, err = tab.Intern([]byte("x"), a)
	assert.ErrorIs(t, err, arena.ErrDestroyed)
}

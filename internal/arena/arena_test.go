package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaBasicAllocation(t *testing.T) {
	a := New(1024)
	p, err := a.Alloc(100)
	require.NoError(t, err)
	assert.Len(t, p, 100)
	assert.Equal(t, 100, cap(p))
	assert.Equal(t, 1, a.Stats().Blocks)
}

func TestArenaMultipleAllocations(t *testing.T) {
	a := New(1024)
	x, err := a.Alloc(10)
	require.NoError(t, err)
	y, err := a.Alloc(20)
	require.NoError(t, err)

	copy(x, "0123456789")
	// Appending to x must not clobber y
	x = append(x, 'X')
	assert.Equal(t, make([]byte, 20), y)
	assert.Equal(t, 30, a.Stats().Used)
}

func TestArenaLinksNewBlock(t *testing.T) {
	a := New(MinBlockSize)
	_, err := a.Alloc(MinBlockSize - 10)
	require.NoError(t, err)
	_, err = a.Alloc(20)
	require.NoError(t, err)

	st := a.Stats()
	assert.Equal(t, 2, st.Blocks)
	assert.Equal(t, 10, st.Wasted)
}

func TestArenaExactBlockFit(t *testing.T) {
	a := New(MinBlockSize)
	_, err := a.Alloc(MinBlockSize)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Stats().Blocks)
}

func TestArenaOversized(t *testing.T) {
	a := New(MinBlockSize)
	_, err := a.Alloc(MinBlockSize + 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOversized))
}

func TestArenaString(t *testing.T) {
	a := New(0)
	src := []byte("hello")
	s, err := a.String(src)
	require.NoError(t, err)
	src[0] = 'j'
	assert.Equal(t, "hello", s)

	empty, err := a.String(nil)
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestArenaDestroy(t *testing.T) {
	a := New(0)
	_, err := a.Alloc(8)
	require.NoError(t, err)

	a.Destroy()
	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.Equal(t, 0, a.Stats().Blocks)

	_, err = a.Alloc(1)
	assert.ErrorIs(t, err, ErrDestroyed)
	_, err = a.String(nil)
	assert.ErrorIs(t, err, ErrDestroyed)
}

func TestArenaBlockSizeClamp(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"default", 0, DefaultBlockSize},
		{"negative", -5, DefaultBlockSize},
		{"tiny", 1, MinBlockSize},
		{"huge", MaxBlockSize * 2, MaxBlockSize},
		{"exact", 4096, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.in).BlockSize())
		})
	}
}

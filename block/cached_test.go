package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedBlockAllocatorPrefersCache(t *testing.T) {
	a := NewCachedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(32))

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	a.DeallocateBlock(b1)

	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.Equal(t, b1.Ptr, b2.Ptr, "a cached block must be preferred over a fresh allocation")
}

func TestCachedBlockAllocatorNextBlockSizeReflectsCache(t *testing.T) {
	a := NewCachedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(32))
	assert.EqualValues(t, 32, a.NextBlockSize())

	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	a.DeallocateBlock(b)
	assert.EqualValues(t, b.Size, a.NextBlockSize())
}

func TestCachedBlockAllocatorReleaseDrainsCache(t *testing.T) {
	a := NewCachedBlockAllocator[*MallocBlockAllocator](NewMallocBlockAllocator(32))
	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	a.DeallocateBlock(b)
	a.Release()
	// Draining the cache should not panic and should leave it empty.
	assert.EqualValues(t, 32, a.NextBlockSize())
}

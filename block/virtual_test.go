package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
)

func TestVirtualBlockAllocatorHandsOutOnePagePerBlock(t *testing.T) {
	a, err := NewVirtualBlockAllocator(4)
	require.NoError(t, err)
	defer a.Release()

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.NotEqual(t, b1.Ptr, b2.Ptr)

	// Committed memory must actually be writable.
	b1.Bytes()[0] = 0x42
	assert.EqualValues(t, 0x42, b1.Bytes()[0])
}

func TestVirtualBlockAllocatorExhaustion(t *testing.T) {
	a, err := NewVirtualBlockAllocator(2)
	require.NoError(t, err)
	defer a.Release()

	require.False(t, a.AllocateBlock().IsNull())
	require.False(t, a.AllocateBlock().IsNull())
	assert.True(t, a.AllocateBlock().IsNull(), "reservation should be exhausted after handing out every page")
}

func TestVirtualBlockAllocatorReusesDeallocatedBlocks(t *testing.T) {
	a, err := NewVirtualBlockAllocator(2)
	require.NoError(t, err)
	defer a.Release()

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	a.DeallocateBlock(b1)

	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.Equal(t, b1.Ptr, b2.Ptr)
}

func TestGrowingVirtualBlockAllocatorGrowsSpan(t *testing.T) {
	a, err := NewGrowingVirtualBlockAllocator(8, allox.NewPowerTwoGrowth(0))
	require.NoError(t, err)
	defer a.Release()

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	pageSize := b1.Size
	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.Equal(t, 2*pageSize, b2.Size)
}

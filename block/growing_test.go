package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
)

func TestGrowingNewBlockAllocatorGrows(t *testing.T) {
	a := NewGrowingNewBlockAllocator(16, allox.NewPowerTwoGrowth(0))

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	assert.EqualValues(t, 16, b1.Size)

	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.EqualValues(t, 32, b2.Size)

	b3 := a.AllocateBlock()
	require.False(t, b3.IsNull())
	assert.EqualValues(t, 64, b3.Size)
}

func TestGrowingMallocBlockAllocatorGrows(t *testing.T) {
	a := NewGrowingMallocBlockAllocator(16, allox.NewLinearGrowth(3))

	sizes := []uintptr{16, 32, 48, 48}
	for _, want := range sizes {
		b := a.AllocateBlock()
		require.False(t, b.IsNull())
		assert.Equal(t, want, b.Size)
		a.DeallocateBlock(b)
	}
}

func TestGrowingAlignedBlockAllocatorAlignsEachBlock(t *testing.T) {
	a := NewGrowingAlignedBlockAllocator(16, 32, allox.NewPowerTwoGrowth(4))

	b1 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	assert.Zero(t, uintptr(b1.Ptr)%32)
	assert.EqualValues(t, 16, b1.Size)
	a.DeallocateBlock(b1)

	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	assert.EqualValues(t, 32, b2.Size)
	a.DeallocateBlock(b2)
}

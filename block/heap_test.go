package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockAllocatorProducesRightSizedBlocks(t *testing.T) {
	a := NewNewBlockAllocator(128)
	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	assert.EqualValues(t, 128, b.Size)
	a.DeallocateBlock(b)
}

func TestMallocBlockAllocatorRoundTrip(t *testing.T) {
	a := NewMallocBlockAllocator(256)
	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	assert.EqualValues(t, 256, b.Size)
	a.DeallocateBlock(b)

	b2 := a.AllocateBlock()
	require.False(t, b2.IsNull())
	a.DeallocateBlock(b2)
}

func TestMallocBlockAllocatorZeroSizeIsNull(t *testing.T) {
	a := NewMallocBlockAllocator(0)
	assert.True(t, a.AllocateBlock().IsNull())
}

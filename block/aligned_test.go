package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignedBlockAllocatorAlignment(t *testing.T) {
	a := NewAlignedBlockAllocator(64, 64)
	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	assert.Zero(t, uintptr(b.Ptr)%64)
	assert.EqualValues(t, 64, b.Size)
	a.DeallocateBlock(b)
}

func TestAlignedBlockAllocatorNextBlock(t *testing.T) {
	a := NewAlignedBlockAllocator(32, 16)
	assert.EqualValues(t, 32, a.NextBlockSize())
	assert.EqualValues(t, 16, a.NextBlockAlignment())
}

package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox/block"
)

func TestBlockAllocatorReferenceForwardsAllocation(t *testing.T) {
	nb := block.NewNewBlockAllocator(32)
	r := NewBlockAllocatorReference[*block.NewBlockAllocator](nb)

	b := r.AllocateBlock()
	require.False(t, b.IsNull())
	assert.EqualValues(t, 32, r.NextBlockSize())
	r.DeallocateBlock(b)
}

func TestMakeStatelessBlockAllocatorReferenceEqualityIgnoresAddress(t *testing.T) {
	r1 := MakeStatelessBlockAllocatorReference[block.NullBlockAllocator]()
	r2 := MakeStatelessBlockAllocatorReference[block.NullBlockAllocator]()

	assert.True(t, r1.Equal(r2))

	b := r1.AllocateBlock()
	assert.True(t, b.IsNull())
}

func TestMakeStatelessBlockAllocatorReferencePanicsOnStatefulAllocator(t *testing.T) {
	assert.Panics(t, func() {
		MakeStatelessBlockAllocatorReference[*block.NewBlockAllocator]()
	})
}

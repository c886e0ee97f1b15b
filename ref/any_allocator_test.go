package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
	"github.com/go-allox/allox/alloc"
)

func TestAnyAllocatorForwardsTryAllocateAndDeallocate(t *testing.T) {
	backing := make([]byte, 128)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))

	a := NewAnyAllocator[*alloc.BumpUpAllocator](bump)
	require.True(t, a.IsValid())

	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)
	a.Deallocate(p, 16)
}

func TestAnyAllocatorInfoForwards(t *testing.T) {
	backing := make([]byte, 64)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	a := NewAnyAllocator[*alloc.BumpUpAllocator](bump)

	info := a.Info()
	assert.Equal(t, "Unnamed", info.Name)
}

func TestZeroAnyAllocatorIsInvalid(t *testing.T) {
	var a AnyAllocator
	assert.False(t, a.IsValid())
}

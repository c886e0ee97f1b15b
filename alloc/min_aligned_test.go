package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
)

func TestMinAlignedAllocatorRaisesAlignment(t *testing.T) {
	buf := make([]byte, 256)
	inner := NewBumpUpAllocator(allox.BlockFromBytes(buf))
	a := NewMinAlignedAllocator[*BumpUpAllocator](inner, 64)

	p := a.TryAllocate(8, 8)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%64, "alignment should be raised to MinAlign even though 8 was requested")
}

func TestMinAlignedAllocatorForwardsDeallocateAll(t *testing.T) {
	buf := make([]byte, 256)
	inner := NewBumpUpAllocator(allox.BlockFromBytes(buf))
	a := NewMinAlignedAllocator[*BumpUpAllocator](inner, 32)

	p1 := a.TryAllocate(8, 8)
	require.NotNil(t, p1)
	a.DeallocateAll()
	p2 := a.TryAllocate(8, 8)
	require.NotNil(t, p2)
	assert.Equal(t, p1, p2)
}

func TestMinAlignedAllocatorMaxAlignment(t *testing.T) {
	buf := make([]byte, 64)
	inner := NewBumpUpAllocator(allox.BlockFromBytes(buf))
	a := NewMinAlignedAllocator[*BumpUpAllocator](inner, bumpMaxAlignment/2)
	assert.Equal(t, bumpMaxAlignment, a.MaxAlignment())
}

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
	"github.com/go-allox/allox/alloc"
	"github.com/go-allox/allox/block"
)

func TestReferencedAllocatorStorageSharesTheSameInstance(t *testing.T) {
	backing := make([]byte, 128)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))

	s := NewReferencedAllocatorStorage[*alloc.BumpUpAllocator](bump)
	require.Same(t, bump, s.GetAllocator())

	p := s.GetAllocator().TryAllocate(16, 8)
	assert.NotNil(t, p)
}

func TestMakeSharedAllocatorStorageOwnsItsOwnCopy(t *testing.T) {
	backing := make([]byte, 128)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))

	s := MakeSharedAllocatorStorage[*alloc.BumpUpAllocator](func() *alloc.BumpUpAllocator {
		return alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	})
	require.NotNil(t, s.GetAllocator())
	assert.NotSame(t, bump, s.GetAllocator())
}

func TestStatelessAllocatorStoragePanicsOnNonStatelessAllocator(t *testing.T) {
	assert.Panics(t, func() {
		NewStatelessAllocatorStorage[*alloc.BumpUpAllocator]()
	})
}

func TestStatelessBlockAllocatorStorageAcceptsNullBlockAllocator(t *testing.T) {
	s := NewStatelessBlockAllocatorStorage[block.NullBlockAllocator]()
	b := s.GetBlockAllocator().AllocateBlock()
	assert.True(t, b.IsNull())
}

func TestStatelessBlockAllocatorStoragePanicsOnStatefulAllocator(t *testing.T) {
	assert.Panics(t, func() {
		NewStatelessBlockAllocatorStorage[*block.NewBlockAllocator]()
	})
}

func TestReferencedBlockAllocatorStorageSharesTheSameInstance(t *testing.T) {
	nb := block.NewNewBlockAllocator(32)
	s := NewReferencedBlockAllocatorStorage[*block.NewBlockAllocator](nb)
	require.Same(t, nb, s.GetBlockAllocator())
}

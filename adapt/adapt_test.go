package adapt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
	"github.com/go-allox/allox/alloc"
	"github.com/go-allox/allox/storage"
)

type widget struct {
	a, b, c int64
}

func TestStandardAllocatorAllocateAndDeallocate(t *testing.T) {
	backing := make([]byte, 4096)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	st := storage.NewReferencedAllocatorStorage[*alloc.BumpUpAllocator](bump)

	sa := NewStandardAllocator[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st)

	p := sa.TryAllocate(4)
	require.NotNil(t, p)
	sa.Deallocate(p, 4)
}

func TestStandardAllocatorMaxSizeDividesByElementSize(t *testing.T) {
	backing := make([]byte, 4096)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	st := storage.NewReferencedAllocatorStorage[*alloc.BumpUpAllocator](bump)
	sa := NewStandardAllocator[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st)

	assert.Equal(t, allox.MaxSizeOf(bump)/24, sa.MaxSize())
}

func TestAllocatorDeleterDeallocatesOnDelete(t *testing.T) {
	backing := make([]byte, 4096)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	st := storage.NewReferencedAllocatorStorage[*alloc.BumpUpAllocator](bump)
	sa := NewStandardAllocator[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st)

	p := sa.TryAllocate(1)
	require.NotNil(t, p)

	d := NewAllocatorDeleter[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st)
	d.Delete(p)
}

func TestPolymorphicAllocatorDeleterUsesStoredSize(t *testing.T) {
	backing := make([]byte, 4096)
	bump := alloc.NewBumpUpAllocator(allox.BlockFromBytes(backing))
	st := storage.NewReferencedAllocatorStorage[*alloc.BumpUpAllocator](bump)
	sa := NewStandardAllocator[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st)

	p := sa.TryAllocate(1)
	require.NotNil(t, p)

	d := NewPolymorphicAllocatorDeleter[widget, *alloc.BumpUpAllocator, storage.ReferencedAllocatorStorage[*alloc.BumpUpAllocator]](st, 24)
	assert.EqualValues(t, 24, d.Size())
	d.Delete(p)
}

package storage

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// ReferencedBlockAllocatorStorage holds a non-owning reference to a
// block allocator the caller continues to own.
type ReferencedBlockAllocatorStorage[B allox.BlockAllocator] struct {
	allocator B
}

// NewReferencedBlockAllocatorStorage wraps b, which the caller retains
// ownership of.
func NewReferencedBlockAllocatorStorage[B allox.BlockAllocator](b B) ReferencedBlockAllocatorStorage[B] {
	return ReferencedBlockAllocatorStorage[B]{allocator: b}
}

// GetBlockAllocator returns the referenced block allocator.
func (s ReferencedBlockAllocatorStorage[B]) GetBlockAllocator() B { return s.allocator }

// SharedBlockAllocatorStorage owns a block allocator this storage
// itself brought into being.
type SharedBlockAllocatorStorage[B allox.BlockAllocator] struct {
	allocator B
}

// MakeSharedBlockAllocatorStorage wraps the result of build, which
// constructs a fresh B.
func MakeSharedBlockAllocatorStorage[B allox.BlockAllocator](build func() B) SharedBlockAllocatorStorage[B] {
	return SharedBlockAllocatorStorage[B]{allocator: build()}
}

// AllocateSharedBlockAllocatorStorage carves sizeof(elem) bytes out of
// upstream and copies elem there, mirroring
// allocate_shared_block_allocator_storage.
func AllocateSharedBlockAllocatorStorage[B allox.BlockAllocator, E any](upstream allox.Allocator, elem E, toBlockAllocator func(*E) B) (SharedBlockAllocatorStorage[B], bool) {
	p := allox.TryAllocate(upstream, unsafe.Sizeof(elem), unsafe.Alignof(elem))
	if p == nil {
		return SharedBlockAllocatorStorage[B]{}, false
	}
	dst := (*E)(p)
	*dst = elem
	return SharedBlockAllocatorStorage[B]{allocator: toBlockAllocator(dst)}, true
}

// GetBlockAllocator returns the shared block allocator.
func (s SharedBlockAllocatorStorage[B]) GetBlockAllocator() B { return s.allocator }

// StatelessBlockAllocatorStorage default-constructs its block
// allocator inline. Constructing one with a B that does not advertise
// itself as Stateless panics at construction time.
type StatelessBlockAllocatorStorage[B allox.BlockAllocator] struct {
	allocator B
}

// NewStatelessBlockAllocatorStorage panics if B's zero value does not
// report itself as stateless.
func NewStatelessBlockAllocatorStorage[B allox.BlockAllocator]() StatelessBlockAllocatorStorage[B] {
	var b B
	if s, ok := any(b).(allox.Stateless); !ok || !s.IsStateless() {
		panic("storage: StatelessBlockAllocatorStorage requires a Stateless block allocator")
	}
	return StatelessBlockAllocatorStorage[B]{allocator: b}
}

// GetBlockAllocator returns the inline, default-constructed block
// allocator.
func (s StatelessBlockAllocatorStorage[B]) GetBlockAllocator() B { return s.allocator }

package storage

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// ReferencedAllocatorStorage holds a non-owning reference to an
// allocator the caller continues to own. A is typically itself a
// pointer type (e.g. *alloc.BumpUpAllocator), so this storage is a
// plain copy of that pointer -- the referenced allocator must outlive
// every ReferencedAllocatorStorage built from it.
type ReferencedAllocatorStorage[A allox.Allocator] struct {
	allocator A
}

// NewReferencedAllocatorStorage wraps a, which the caller retains
// ownership of.
func NewReferencedAllocatorStorage[A allox.Allocator](a A) ReferencedAllocatorStorage[A] {
	return ReferencedAllocatorStorage[A]{allocator: a}
}

// GetAllocator returns the referenced allocator.
func (s ReferencedAllocatorStorage[A]) GetAllocator() A { return s.allocator }

// SharedAllocatorStorage holds an allocator this storage itself brought
// into being, via MakeSharedAllocatorStorage or
// AllocateSharedAllocatorStorage, as opposed to one merely borrowed from
// the caller. Go's garbage collector reclaims the underlying memory
// regardless, so the distinction from ReferencedAllocatorStorage is one
// of provenance and intent, not of reclamation mechanics.
type SharedAllocatorStorage[A allox.Allocator] struct {
	allocator A
}

// MakeSharedAllocatorStorage places a freshly built allocator value on
// the Go heap and wraps the resulting pointer. build must return a value
// whose address satisfies A (A is usually itself a pointer type).
func MakeSharedAllocatorStorage[A allox.Allocator](build func() A) SharedAllocatorStorage[A] {
	return SharedAllocatorStorage[A]{allocator: build()}
}

// AllocateSharedAllocatorStorage carves sizeof(elem) bytes for elem out
// of upstream and copies elem there, returning a pointer-shaped A built
// from the carved address via toAllocator. This mirrors the original's
// allocate_shared_allocator_storage, which places the allocator inside
// another allocator's memory rather than the process heap.
func AllocateSharedAllocatorStorage[A allox.Allocator, E any](upstream allox.Allocator, elem E, toAllocator func(*E) A) (SharedAllocatorStorage[A], bool) {
	p := allox.TryAllocate(upstream, unsafe.Sizeof(elem), unsafe.Alignof(elem))
	if p == nil {
		return SharedAllocatorStorage[A]{}, false
	}
	dst := (*E)(p)
	*dst = elem
	return SharedAllocatorStorage[A]{allocator: toAllocator(dst)}, true
}

// GetAllocator returns the shared allocator.
func (s SharedAllocatorStorage[A]) GetAllocator() A { return s.allocator }

// StatelessAllocatorStorage default-constructs its allocator inline:
// since every instance of A is interchangeable, no address needs
// preserving across copies. Constructing one with an A that does not
// advertise allox.IsStatelessAllocator panics at construction time --
// Go generics have no compile-time trait assertion to catch this
// earlier.
type StatelessAllocatorStorage[A allox.Allocator] struct {
	allocator A
}

// NewStatelessAllocatorStorage panics if A's zero value does not report
// itself as stateless.
func NewStatelessAllocatorStorage[A allox.Allocator]() StatelessAllocatorStorage[A] {
	var a A
	if !allox.IsStatelessAllocator(a) {
		panic("storage: StatelessAllocatorStorage requires a Stateless allocator")
	}
	return StatelessAllocatorStorage[A]{allocator: a}
}

// GetAllocator returns the inline, default-constructed allocator.
func (s StatelessAllocatorStorage[A]) GetAllocator() A { return s.allocator }

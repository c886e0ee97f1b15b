package adapt

import (
	"math"
	"unsafe"

	"github.com/go-allox/allox"
)

// StandardAllocator exposes an allocator_traits-style Allocate(n) /
// Deallocate(p, n) / MaxSize() surface over T, for generic containers
// that want a C++-allocator-shaped dependency rather than an
// allox.Allocator directly. "Always-equal" propagation mirrors the
// underlying Storage: two StandardAllocators built over stateless
// storage are always equal, matching spec.md §4.8.
type StandardAllocator[T any, A allox.Allocator, S Storage[A]] struct {
	storage S
}

// NewStandardAllocator wraps storage for allocating/deallocating T
// values.
func NewStandardAllocator[T any, A allox.Allocator, S Storage[A]](storage S) StandardAllocator[T, A, S] {
	return StandardAllocator[T, A, S]{storage: storage}
}

// Allocate requests room for n contiguous T values, invoking
// allox.OutOfMemoryHandler on failure (returns nil only if that handler
// returns).
func (s StandardAllocator[T, A, S]) Allocate(n uintptr) *T {
	var zero T
	p := allox.Allocate(s.storage.GetAllocator(), n*unsafe.Sizeof(zero), unsafe.Alignof(zero))
	return (*T)(p)
}

// TryAllocate is Allocate's non-throwing form.
func (s StandardAllocator[T, A, S]) TryAllocate(n uintptr) *T {
	var zero T
	p := allox.TryAllocate(s.storage.GetAllocator(), n*unsafe.Sizeof(zero), unsafe.Alignof(zero))
	return (*T)(p)
}

// Deallocate returns the n-T-element region starting at p to the
// underlying allocator.
func (s StandardAllocator[T, A, S]) Deallocate(p *T, n uintptr) {
	var zero T
	s.storage.GetAllocator().Deallocate(unsafe.Pointer(p), n*unsafe.Sizeof(zero))
}

// MaxSize reports the maximum number of T elements a single allocation
// could hold, derived from the underlying allocator's MaxSizeOf in
// bytes.
func (s StandardAllocator[T, A, S]) MaxSize() uintptr {
	var zero T
	elemSize := unsafe.Sizeof(zero)
	if elemSize == 0 {
		return math.MaxInt64
	}
	return allox.MaxSizeOf(s.storage.GetAllocator()) / elemSize
}

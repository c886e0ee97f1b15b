package adapt

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// Storage is satisfied by any of the storage.*AllocatorStorage[A] types:
// a single accessor exposing the wrapped allocator.
type Storage[A allox.Allocator] interface {
	GetAllocator() A
}

// AllocatorDeleter deallocates a single T through the allocator held in
// Storage when called. Go has no destructors, so unlike the original's
// operator() this does not run ~T() first -- callers needing cleanup
// logic should run it themselves before invoking the deleter, the same
// way sync.Pool users reset a value before Put.
type AllocatorDeleter[T any, A allox.Allocator, S Storage[A]] struct {
	storage S
}

// NewAllocatorDeleter builds a deleter over storage.
func NewAllocatorDeleter[T any, A allox.Allocator, S Storage[A]](storage S) AllocatorDeleter[T, A, S] {
	return AllocatorDeleter[T, A, S]{storage: storage}
}

// Delete deallocates p as a single T.
func (d AllocatorDeleter[T, A, S]) Delete(p *T) {
	var zero T
	d.storage.GetAllocator().Deallocate(unsafe.Pointer(p), unsafe.Sizeof(zero))
}

// ArrayAllocatorDeleter is AllocatorDeleter's array form: it additionally
// stores the element count, since the size to deallocate (count *
// sizeof(T)) cannot be recovered from the pointer alone.
type ArrayAllocatorDeleter[T any, A allox.Allocator, S Storage[A]] struct {
	storage S
	count   uintptr
}

// NewArrayAllocatorDeleter builds a deleter for an array of count T
// elements.
func NewArrayAllocatorDeleter[T any, A allox.Allocator, S Storage[A]](storage S, count uintptr) ArrayAllocatorDeleter[T, A, S] {
	return ArrayAllocatorDeleter[T, A, S]{storage: storage, count: count}
}

// Delete deallocates p as an array of d.count T elements.
func (d ArrayAllocatorDeleter[T, A, S]) Delete(p *T) {
	var zero T
	d.storage.GetAllocator().Deallocate(unsafe.Pointer(p), d.count*unsafe.Sizeof(zero))
}

// PolymorphicAllocatorDeleter additionally stores the originally
// requested size, so it can deallocate correctly when T is a base
// interface and the concrete value behind p is larger --
// sizeof(T)-based deletion (as AllocatorDeleter does) would
// deallocate too few bytes in that case. Converting a
// PolymorphicAllocatorDeleter[T] built for a compatible T is supported
// by constructing a new one with the same originalSize; there is no
// array form, matching spec.md §4.8.
type PolymorphicAllocatorDeleter[T any, A allox.Allocator, S Storage[A]] struct {
	storage      S
	originalSize uintptr
}

// NewPolymorphicAllocatorDeleter builds a deleter that will deallocate
// originalSize bytes regardless of sizeof(T).
func NewPolymorphicAllocatorDeleter[T any, A allox.Allocator, S Storage[A]](storage S, originalSize uintptr) PolymorphicAllocatorDeleter[T, A, S] {
	return PolymorphicAllocatorDeleter[T, A, S]{storage: storage, originalSize: originalSize}
}

// Size reports the originally requested allocation size.
func (d PolymorphicAllocatorDeleter[T, A, S]) Size() uintptr { return d.originalSize }

// Delete deallocates p using the originally requested size rather than
// sizeof(T).
func (d PolymorphicAllocatorDeleter[T, A, S]) Delete(p *T) {
	d.storage.GetAllocator().Deallocate(unsafe.Pointer(p), d.originalSize)
}

package allox

import (
	"fmt"
	"math"
	"unsafe"
)

// Allocator is the byte-granular allocation contract every concrete
// strategy in sub-package alloc satisfies. align must always be a power
// of two not exceeding the allocator's MaxAlignment.
//
// TryAllocate never panics on failure; it returns nil. deallocate
// requires p to have come from a previous successful TryAllocate on the
// same logical allocator with the same size -- using p afterward is
// undefined behavior.
type Allocator interface {
	TryAllocate(size, align uintptr) unsafe.Pointer
	Deallocate(p unsafe.Pointer, size uintptr)
}

// ExtendedAllocator is the optional offset-aware form: the returned
// pointer p satisfies AlignOf(p+offset) >= align rather than
// AlignOf(p) >= align.
type ExtendedAllocator interface {
	Allocator
	TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer
}

// Throwing is the optional handler-invoking allocate form. Unlike
// TryAllocate it does not fail silently: on failure it invokes
// OutOfMemoryHandler, which by default aborts the process; it returns
// nil only if that handler returns.
type Throwing interface {
	Allocator
	Allocate(size, align uintptr) unsafe.Pointer
}

// Truncatable is implemented by allocators that can drop every
// outstanding allocation at once (bump allocators, pools).
type Truncatable interface {
	Allocator
	DeallocateAll()
}

// OwnershipAware is implemented by allocators that can answer whether a
// given pointer originated from them.
type OwnershipAware interface {
	Allocator
	Owns(p unsafe.Pointer) bool
}

// Informative is implemented by allocators that carry their own name.
type Informative interface {
	Info() Info
}

// Sized is implemented by allocators that know bounds on the sizes they
// can satisfy.
type Sized interface {
	MaxSize() uintptr
	MinSize() uintptr
}

// Recommender is implemented by allocators that can report a
// recommended allocation size rounding up from a requested count.
type Recommender interface {
	RecommendedAllocationSize(n uintptr) uintptr
}

// MaxAligned is implemented by allocators whose maximum supported
// alignment is not DefaultAlignment.
type MaxAligned interface {
	MaxAlignment() uintptr
}

// Stateless is a marker implemented by allocators whose every instance
// is interchangeable: empty, trivially constructed, always-equal.
type Stateless interface {
	IsStateless() bool
}

// TryAllocate forwards to a.TryAllocate. It is the uniform entry point
// the rest of this module calls through, mirroring allocator_traits.
func TryAllocate(a Allocator, size, align uintptr) unsafe.Pointer {
	return a.TryAllocate(size, align)
}

// TryAllocateOffset forwards to the ExtendedAllocator form if a
// implements it. If a does not, this panics: spec.md's allocator_traits
// treats unsupported optional operations as a compile-time static
// assertion, which has no Go equivalent other than a loud runtime
// failure at the one call site that needed the capability.
func TryAllocateOffset(a Allocator, size, align, offset uintptr) unsafe.Pointer {
	if ext, ok := a.(ExtendedAllocator); ok {
		return ext.TryAllocateOffset(size, align, offset)
	}
	panic(fmt.Sprintf("allox: %T does not implement ExtendedAllocator", a))
}

// SupportsOffset reports whether a implements ExtendedAllocator.
func SupportsOffset(a Allocator) bool {
	_, ok := a.(ExtendedAllocator)
	return ok
}

// Allocate forwards to a.Allocate if a implements Throwing; otherwise it
// calls TryAllocate and, on null, invokes OutOfMemoryHandler.Get(). If
// the handler returns (the default handler never does -- it aborts the
// process), Allocate returns nil without retrying.
func Allocate(a Allocator, size, align uintptr) unsafe.Pointer {
	if t, ok := a.(Throwing); ok {
		return t.Allocate(size, align)
	}
	if p := a.TryAllocate(size, align); p != nil {
		return p
	}
	OutOfMemoryHandler.Get()(infoOrDefault(a), size)
	return nil
}

// DeallocateAll forwards to a.DeallocateAll if a implements Truncatable.
// It panics otherwise (see TryAllocateOffset).
func DeallocateAll(a Allocator) {
	if t, ok := a.(Truncatable); ok {
		t.DeallocateAll()
		return
	}
	panic(fmt.Sprintf("allox: %T does not implement Truncatable", a))
}

// SupportsTruncation reports whether a implements Truncatable.
func SupportsTruncation(a Allocator) bool {
	_, ok := a.(Truncatable)
	return ok
}

// Owns forwards to a.Owns if a implements OwnershipAware. It panics
// otherwise.
func Owns(a Allocator, p unsafe.Pointer) bool {
	if o, ok := a.(OwnershipAware); ok {
		return o.Owns(p)
	}
	panic(fmt.Sprintf("allox: %T does not implement OwnershipAware", a))
}

// KnowsOwnership reports whether a implements OwnershipAware.
func KnowsOwnership(a Allocator) bool {
	_, ok := a.(OwnershipAware)
	return ok
}

func infoOrDefault(a Allocator) Info {
	if inf, ok := a.(Informative); ok {
		return inf.Info()
	}
	return DefaultInfo(unsafe.Pointer(nil))
}

// AllocInfo forwards to a.Info() if a implements Informative, else
// returns ("Unnamed", &a).
func AllocInfo(a Allocator) Info {
	if inf, ok := a.(Informative); ok {
		return inf.Info()
	}
	return DefaultInfo(addressOf(a))
}

// MaxSizeOf forwards to a.MaxSize() if a implements Sized, else returns
// the maximum representable size.
func MaxSizeOf(a Allocator) uintptr {
	if s, ok := a.(Sized); ok {
		return s.MaxSize()
	}
	return uintptr(math.MaxUint64)
}

// MinSizeOf forwards to a.MinSize() if a implements Sized, else returns
// 1.
func MinSizeOf(a Allocator) uintptr {
	if s, ok := a.(Sized); ok {
		return s.MinSize()
	}
	return 1
}

// MaxAlignmentOf forwards to a.MaxAlignment() if a implements
// MaxAligned, else returns DefaultAlignment.
func MaxAlignmentOf(a Allocator) uintptr {
	if m, ok := a.(MaxAligned); ok {
		return m.MaxAlignment()
	}
	return DefaultAlignment
}

// IsStatelessAllocator reports whether a advertises itself as stateless.
func IsStatelessAllocator(a Allocator) bool {
	if s, ok := a.(Stateless); ok {
		return s.IsStateless()
	}
	return false
}

// addressOf is used only for diagnostics: it requires a to be backed by
// a pointer, true of every concrete allocator in this module since their
// methods mutate state.
func addressOf(a Allocator) unsafe.Pointer {
	type twoWords struct{ typ, data unsafe.Pointer }
	return (*twoWords)(unsafe.Pointer(&a)).data
}

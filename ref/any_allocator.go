package ref

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// anyAllocatorVtable is the explicit struct-of-function-pointers spec.md
// §9 calls for in place of a bare interface value, so the set of
// type-erased operations (try_allocate, allocate, deallocate, info)
// stays fixed and inspectable rather than whatever methods the dynamic
// type happens to expose. Each entry closes over nothing; data is
// threaded through explicitly, mirroring a C vtable's first `self`
// parameter.
type anyAllocatorVtable struct {
	tryAllocate func(data any, size, align uintptr) unsafe.Pointer
	allocate    func(data any, size, align uintptr) unsafe.Pointer
	deallocate  func(data any, p unsafe.Pointer, size uintptr)
	info        func(data any) allox.Info
}

func vtableFor[A allox.Allocator]() *anyAllocatorVtable {
	return &anyAllocatorVtable{
		tryAllocate: func(data any, size, align uintptr) unsafe.Pointer {
			return data.(A).TryAllocate(size, align)
		},
		allocate: func(data any, size, align uintptr) unsafe.Pointer {
			return allox.Allocate(data.(A), size, align)
		},
		deallocate: func(data any, p unsafe.Pointer, size uintptr) {
			data.(A).Deallocate(p, size)
		},
		info: func(data any) allox.Info {
			return allox.AllocInfo(data.(A))
		},
	}
}

// AnyAllocator is a type-erased allox.Allocator: a (data, vtable) pair
// built from any concrete allocator-satisfying type. It drops every
// optional static capability (Stateless, OwnershipAware, Truncatable,
// ...) in exchange for a single concrete type that can cross package
// boundaries without a generic parameter.
type AnyAllocator struct {
	data   any
	vtable *anyAllocatorVtable
}

// NewAnyAllocator type-erases a, which must already satisfy
// allox.Allocator.
func NewAnyAllocator[A allox.Allocator](a A) AnyAllocator {
	return AnyAllocator{data: a, vtable: vtableFor[A]()}
}

// TryAllocate forwards to the erased allocator's TryAllocate.
func (a AnyAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.vtable.tryAllocate(a.data, size, align)
}

// Allocate forwards to the erased allocator via allox.Allocate, so
// non-Throwing allocators still get the invoke-handler-on-failure
// behavior.
func (a AnyAllocator) Allocate(size, align uintptr) unsafe.Pointer {
	return a.vtable.allocate(a.data, size, align)
}

// Deallocate forwards to the erased allocator's Deallocate.
func (a AnyAllocator) Deallocate(p unsafe.Pointer, size uintptr) {
	a.vtable.deallocate(a.data, p, size)
}

// Info forwards to the erased allocator's diagnostic Info.
func (a AnyAllocator) Info() allox.Info {
	return a.vtable.info(a.data)
}

// IsValid reports whether a holds an erased allocator at all, i.e.
// whether it was built via NewAnyAllocator rather than left as a zero
// AnyAllocator.
func (a AnyAllocator) IsValid() bool { return a.vtable != nil }

var (
	_ allox.Allocator   = AnyAllocator{}
	_ allox.Throwing    = AnyAllocator{}
	_ allox.Informative = AnyAllocator{}
)

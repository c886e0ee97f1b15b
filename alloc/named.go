// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// NamedAllocator decorates an allox.Allocator A with a constant name,
// overriding Info() to report it; every other operation forwards
// unchanged. Adding a name demotes IsStateless to false even if A itself
// is stateless, since two named instances over the same stateless A are
// no longer interchangeable for diagnostic purposes.
type NamedAllocator[A allox.Allocator] struct {
	Inner A
	name  string
}

// NewNamedAllocator wraps inner under the given diagnostic name.
func NewNamedAllocator[A allox.Allocator](inner A, name string) *NamedAllocator[A] {
	return &NamedAllocator[A]{Inner: inner, name: name}
}

// TryAllocate forwards to Inner.
func (a *NamedAllocator[A]) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.Inner.TryAllocate(size, align)
}

// TryAllocateOffset forwards to Inner. Panics if Inner does not
// implement allox.ExtendedAllocator.
func (a *NamedAllocator[A]) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	return allox.TryAllocateOffset(a.Inner, size, align, offset)
}

// Deallocate forwards to Inner.
func (a *NamedAllocator[A]) Deallocate(p unsafe.Pointer, size uintptr) {
	a.Inner.Deallocate(p, size)
}

// DeallocateAll forwards to Inner. Panics if Inner does not implement
// allox.Truncatable.
func (a *NamedAllocator[A]) DeallocateAll() { allox.DeallocateAll(a.Inner) }

// Owns forwards to Inner. Panics if Inner does not implement
// allox.OwnershipAware.
func (a *NamedAllocator[A]) Owns(p unsafe.Pointer) bool { return allox.Owns(a.Inner, p) }

// Info reports a's registered name, deduplicated against every other
// NamedAllocator sharing that name via allox.RegisterName.
func (a *NamedAllocator[A]) Info() allox.Info {
	return allox.RegisterName(a.name, allox.AllocInfo(a.Inner).Address)
}

// IsStateless always reports false: a name demotes statelessness.
func (a *NamedAllocator[A]) IsStateless() bool { return false }

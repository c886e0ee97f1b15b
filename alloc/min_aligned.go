// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// MinAlignedAllocator decorates an allox.Allocator A, raising every
// requested alignment to at least MinAlign before forwarding. Every
// other operation forwards unchanged through the allox trait functions,
// which already turn an unsupported optional capability on A into the
// same panic a direct call through allox would produce.
type MinAlignedAllocator[A allox.Allocator] struct {
	Inner    A
	MinAlign uintptr
}

// NewMinAlignedAllocator wraps inner, raising its default alignment to
// at least minAlign.
func NewMinAlignedAllocator[A allox.Allocator](inner A, minAlign uintptr) *MinAlignedAllocator[A] {
	return &MinAlignedAllocator[A]{Inner: inner, MinAlign: minAlign}
}

func (m *MinAlignedAllocator[A]) raise(align uintptr) uintptr {
	if align < m.MinAlign {
		return m.MinAlign
	}
	return align
}

// TryAllocate forwards to Inner with align raised to at least MinAlign.
func (m *MinAlignedAllocator[A]) TryAllocate(size, align uintptr) unsafe.Pointer {
	return allox.TryAllocate(m.Inner, size, m.raise(align))
}

// TryAllocateOffset forwards to Inner with align raised to at least
// MinAlign. Panics if Inner does not implement allox.ExtendedAllocator.
func (m *MinAlignedAllocator[A]) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	return allox.TryAllocateOffset(m.Inner, size, m.raise(align), offset)
}

// Deallocate forwards to Inner unchanged.
func (m *MinAlignedAllocator[A]) Deallocate(p unsafe.Pointer, size uintptr) {
	m.Inner.Deallocate(p, size)
}

// DeallocateAll forwards to Inner. Panics if Inner does not implement
// allox.Truncatable.
func (m *MinAlignedAllocator[A]) DeallocateAll() { allox.DeallocateAll(m.Inner) }

// Owns forwards to Inner. Panics if Inner does not implement
// allox.OwnershipAware.
func (m *MinAlignedAllocator[A]) Owns(p unsafe.Pointer) bool { return allox.Owns(m.Inner, p) }

// MaxAlignment is the greater of Inner's own MaxAlignment and MinAlign.
func (m *MinAlignedAllocator[A]) MaxAlignment() uintptr {
	inner := allox.MaxAlignmentOf(m.Inner)
	if inner > m.MinAlign {
		return inner
	}
	return m.MinAlign
}

// Info forwards to Inner's AllocInfo.
func (m *MinAlignedAllocator[A]) Info() allox.Info { return allox.AllocInfo(m.Inner) }

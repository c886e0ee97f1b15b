// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// bumpMaxAlignment is 1 << (word_bits-1), the largest power-of-two
// alignment a bare bump pointer can ever satisfy.
const bumpMaxAlignment = uintptr(1) << (unsafe.Sizeof(uintptr(0))*8 - 1)

// BumpUpAllocator allocates by advancing a cursor to higher addresses
// through its block. Individual deallocation is a no-op; the only
// recovery path is DeallocateAll.
type BumpUpAllocator struct {
	block   allox.Block
	current unsafe.Pointer
}

// NewBumpUpAllocator constructs a BumpUpAllocator over block, cursor at
// the low edge.
func NewBumpUpAllocator(block allox.Block) *BumpUpAllocator {
	return &BumpUpAllocator{block: block, current: block.Ptr}
}

// TryAllocate is TryAllocateOffset with offset 0.
func (a *BumpUpAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.TryAllocateOffset(size, align, 0)
}

// TryAllocateOffset advances the cursor forward to the first address at
// or after it where p+offset satisfies align, returning p if the
// resulting chunk still fits inside the block.
func (a *BumpUpAllocator) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	p, _ := allox.AlignForward(a.current, align, offset)
	if uintptr(p)+size > uintptr(a.block.End()) {
		return nil
	}
	a.current = unsafe.Pointer(uintptr(p) + size)
	return p
}

// Deallocate does nothing; use DeallocateAll.
func (a *BumpUpAllocator) Deallocate(unsafe.Pointer, uintptr) {}

// DeallocateAll resets the cursor to the start of the block.
func (a *BumpUpAllocator) DeallocateAll() { a.current = a.block.Ptr }

// Owns reports whether p falls within the underlying block.
func (a *BumpUpAllocator) Owns(p unsafe.Pointer) bool { return a.block.Contains(p) }

// MaxAlignment is the largest power-of-two alignment representable by a
// raw pointer bump: 1 << (word_bits-1).
func (a *BumpUpAllocator) MaxAlignment() uintptr { return bumpMaxAlignment }

// BumpDownAllocator is the mirror image of BumpUpAllocator: it allocates
// by retreating a cursor to lower addresses through its block.
type BumpDownAllocator struct {
	block   allox.Block
	current unsafe.Pointer
}

// NewBumpDownAllocator constructs a BumpDownAllocator over block, cursor
// at the high edge.
func NewBumpDownAllocator(block allox.Block) *BumpDownAllocator {
	return &BumpDownAllocator{block: block, current: block.End()}
}

// TryAllocate is TryAllocateOffset with offset 0.
func (a *BumpDownAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.TryAllocateOffset(size, align, 0)
}

// TryAllocateOffset retreats the cursor to the highest address at or
// below it where the resulting size-byte chunk has p+offset aligned,
// returning p if the chunk still fits inside the block.
func (a *BumpDownAllocator) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	if size > uintptr(a.current)-uintptr(a.block.Ptr) {
		return nil
	}
	raw := unsafe.Pointer(uintptr(a.current) - size)
	p, _ := allox.AlignBackward(raw, align, offset)
	if uintptr(p) < uintptr(a.block.Ptr) {
		return nil
	}
	a.current = p
	return p
}

// Deallocate does nothing; use DeallocateAll.
func (a *BumpDownAllocator) Deallocate(unsafe.Pointer, uintptr) {}

// DeallocateAll resets the cursor to the end of the block.
func (a *BumpDownAllocator) DeallocateAll() { a.current = a.block.End() }

// Owns reports whether p falls within the underlying block.
func (a *BumpDownAllocator) Owns(p unsafe.Pointer) bool { return a.block.Contains(p) }

// MaxAlignment is the largest power-of-two alignment representable by a
// raw pointer bump: 1 << (word_bits-1).
func (a *BumpDownAllocator) MaxAlignment() uintptr { return bumpMaxAlignment }

// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// bumpLifoMaxAlignment caps at 256 since the adjustment recorded between
// a chunk and the cursor it restores is a single byte.
const bumpLifoMaxAlignment = uintptr(256)

// BumpUpLifoAllocator is BumpUpAllocator plus a one-byte adjustment
// recorded just before each returned pointer, letting a strictly LIFO
// sequence of Deallocate calls unwind the cursor exactly. Deallocating
// out of LIFO order leaves the cursor in an unspecified state.
type BumpUpLifoAllocator struct {
	block   allox.Block
	current unsafe.Pointer
}

// NewBumpUpLifoAllocator constructs a BumpUpLifoAllocator over block,
// cursor at the low edge.
func NewBumpUpLifoAllocator(block allox.Block) *BumpUpLifoAllocator {
	return &BumpUpLifoAllocator{block: block, current: block.Ptr}
}

// TryAllocate is TryAllocateOffset with offset 0.
func (a *BumpUpLifoAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.TryAllocateOffset(size, align, 0)
}

// TryAllocateOffset reserves one byte above the cursor to record the
// adjustment, then aligns forward as BumpUpAllocator does.
func (a *BumpUpLifoAllocator) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	raw := unsafe.Pointer(uintptr(a.current) + 1)
	p, _ := allox.AlignForward(raw, align, offset)
	adjustment := uintptr(p) - uintptr(a.current)
	if adjustment > 0xff {
		return nil
	}
	if uintptr(p)+size > uintptr(a.block.End()) {
		return nil
	}
	*(*byte)(unsafe.Pointer(uintptr(p) - 1)) = byte(adjustment)
	a.current = unsafe.Pointer(uintptr(p) + size)
	return p
}

// Deallocate restores the cursor to where it was immediately before the
// matching TryAllocate call. p must be the most recently allocated,
// still-live chunk.
func (a *BumpUpLifoAllocator) Deallocate(p unsafe.Pointer, size uintptr) {
	adjustment := *(*byte)(unsafe.Pointer(uintptr(p) - 1))
	a.current = unsafe.Pointer(uintptr(p) - uintptr(adjustment))
}

// DeallocateAll resets the cursor to the start of the block.
func (a *BumpUpLifoAllocator) DeallocateAll() { a.current = a.block.Ptr }

// Owns reports whether p falls within the underlying block.
func (a *BumpUpLifoAllocator) Owns(p unsafe.Pointer) bool { return a.block.Contains(p) }

// MaxAlignment is capped at 256: the single stored adjustment byte can't
// encode a larger skip.
func (a *BumpUpLifoAllocator) MaxAlignment() uintptr { return bumpLifoMaxAlignment }

// BumpDownLifoAllocator mirrors BumpUpLifoAllocator for a descending
// cursor: the adjustment byte is recorded just above each chunk instead
// of just below it.
type BumpDownLifoAllocator struct {
	block   allox.Block
	current unsafe.Pointer
}

// NewBumpDownLifoAllocator constructs a BumpDownLifoAllocator over
// block, cursor at the high edge.
func NewBumpDownLifoAllocator(block allox.Block) *BumpDownLifoAllocator {
	return &BumpDownLifoAllocator{block: block, current: block.End()}
}

// TryAllocate is TryAllocateOffset with offset 0.
func (a *BumpDownLifoAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.TryAllocateOffset(size, align, 0)
}

// TryAllocateOffset reserves one byte directly above the chunk to record
// the adjustment, then aligns backward as BumpDownAllocator does.
func (a *BumpDownLifoAllocator) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	if size+1 > uintptr(a.current)-uintptr(a.block.Ptr) {
		return nil
	}
	raw := unsafe.Pointer(uintptr(a.current) - size - 1)
	p, _ := allox.AlignBackward(raw, align, offset)
	if uintptr(p) < uintptr(a.block.Ptr) {
		return nil
	}
	adjustment := uintptr(a.current) - (uintptr(p) + size)
	if adjustment > 0xff {
		return nil
	}
	*(*byte)(unsafe.Pointer(uintptr(p) + size)) = byte(adjustment)
	a.current = p
	return p
}

// Deallocate restores the cursor to where it was immediately before the
// matching TryAllocate call. p must be the most recently allocated,
// still-live chunk.
func (a *BumpDownLifoAllocator) Deallocate(p unsafe.Pointer, size uintptr) {
	adjustment := *(*byte)(unsafe.Pointer(uintptr(p) + size))
	a.current = unsafe.Pointer(uintptr(p) + size + uintptr(adjustment))
}

// DeallocateAll resets the cursor to the end of the block.
func (a *BumpDownLifoAllocator) DeallocateAll() { a.current = a.block.End() }

// Owns reports whether p falls within the underlying block.
func (a *BumpDownLifoAllocator) Owns(p unsafe.Pointer) bool { return a.block.Contains(p) }

// MaxAlignment is capped at 256: the single stored adjustment byte can't
// encode a larger skip.
func (a *BumpDownLifoAllocator) MaxAlignment() uintptr { return bumpLifoMaxAlignment }

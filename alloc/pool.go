// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alloc

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// poolMaxAlignment bounds the alignment pool_allocator can satisfy
// within a single chunk.
const poolMaxAlignment = uintptr(128)

// PoolAllocator slices its block into equal-size chunks on construction
// and threads them through a Freelist. Every allocation request must fit
// within one chunk; there is no splitting or coalescing across chunks.
type PoolAllocator struct {
	block     allox.Block
	chunkSize uintptr
	free      allox.Freelist
}

// NewPoolAllocator constructs a PoolAllocator dividing block into
// block.Size/chunkSize fixed chunks.
func NewPoolAllocator(chunkSize uintptr, block allox.Block) *PoolAllocator {
	a := &PoolAllocator{block: block, chunkSize: chunkSize}
	a.rebuild()
	return a
}

// rebuild re-threads every chunk of the block onto the freelist in
// ascending address order, so that a fresh pool (and one that has just
// run DeallocateAll) hands out chunk 0 first.
func (a *PoolAllocator) rebuild() {
	a.free.Clear()
	n := int(a.block.Size / a.chunkSize)
	for i := n - 1; i >= 0; i-- {
		chunk := unsafe.Pointer(uintptr(a.block.Ptr) + uintptr(i)*a.chunkSize)
		a.free.Store(chunk)
	}
}

// TryAllocate is TryAllocateOffset with offset 0.
func (a *PoolAllocator) TryAllocate(size, align uintptr) unsafe.Pointer {
	return a.TryAllocateOffset(size, align, 0)
}

// TryAllocateOffset pops one chunk from the freelist and returns a
// pointer aligned forward within it. size+offset must not exceed the
// chunk size and align must not exceed MaxAlignment.
func (a *PoolAllocator) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	if size+offset > a.chunkSize || align > poolMaxAlignment {
		return nil
	}
	chunk := a.free.Request()
	if chunk == nil {
		return nil
	}
	p, _ := allox.AlignForward(chunk, align, offset)
	if uintptr(p)+size > uintptr(chunk)+a.chunkSize {
		a.free.Store(chunk)
		return nil
	}
	return p
}

// Deallocate returns p's chunk to the freelist.
func (a *PoolAllocator) Deallocate(p unsafe.Pointer, _ uintptr) {
	idx := (uintptr(p) - uintptr(a.block.Ptr)) / a.chunkSize
	chunk := unsafe.Pointer(uintptr(a.block.Ptr) + idx*a.chunkSize)
	a.free.Store(chunk)
}

// DeallocateAll rebuilds the freelist from the block, discarding any
// outstanding allocations.
func (a *PoolAllocator) DeallocateAll() { a.rebuild() }

// Owns reports whether p falls within the underlying block.
func (a *PoolAllocator) Owns(p unsafe.Pointer) bool { return a.block.Contains(p) }

// MaxAlignment is 128: requests with a larger alignment are rejected. A
// request within this limit still fails if, once aligned, it does not
// fit inside its chunk.
func (a *PoolAllocator) MaxAlignment() uintptr { return poolMaxAlignment }

// MaxSize reports the chunk size: the largest single request the pool
// can ever satisfy.
func (a *PoolAllocator) MaxSize() uintptr { return a.chunkSize }

// MinSize is 1.
func (a *PoolAllocator) MinSize() uintptr { return 1 }

// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/go-allox/allox"
	"github.com/go-allox/allox/osmem"
)

// NewBlockAllocator allocates one block per request from the ordinary Go
// heap (via make, so blocks remain visible to the garbage collector).
// Its block size is fixed at construction.
type NewBlockAllocator struct {
	blockSize uintptr
}

// NewNewBlockAllocator constructs a NewBlockAllocator handing out blocks
// of blockSize bytes.
func NewNewBlockAllocator(blockSize uintptr) *NewBlockAllocator {
	return &NewBlockAllocator{blockSize: blockSize}
}

// AllocateBlock returns a freshly made, GC-visible block.
func (a *NewBlockAllocator) AllocateBlock() allox.Block {
	if a.blockSize == 0 {
		return allox.NullBlock
	}
	return allox.BlockFromBytes(make([]byte, a.blockSize))
}

// DeallocateBlock is a no-op: the garbage collector reclaims the
// backing array once b is no longer referenced.
func (a *NewBlockAllocator) DeallocateBlock(allox.Block) {}

// NextBlockSize reports the fixed block size.
func (a *NewBlockAllocator) NextBlockSize() uintptr { return a.blockSize }

var _ allox.BlockAllocator = (*NewBlockAllocator)(nil)

// MallocBlockAllocator allocates one block per request from the
// mmap-page-slab engine in osmem, so blocks are invisible to the
// garbage collector and must be explicitly freed by DeallocateBlock.
type MallocBlockAllocator struct {
	blockSize uintptr
	heap      osmem.Heap
}

// NewMallocBlockAllocator constructs a MallocBlockAllocator handing out
// blocks of blockSize bytes.
func NewMallocBlockAllocator(blockSize uintptr) *MallocBlockAllocator {
	return &MallocBlockAllocator{blockSize: blockSize}
}

// AllocateBlock mallocs a new block via osmem, or returns allox.NullBlock
// if the underlying reservation fails.
func (a *MallocBlockAllocator) AllocateBlock() allox.Block {
	if a.blockSize == 0 {
		return allox.NullBlock
	}
	b, err := a.heap.Malloc(int(a.blockSize))
	if err != nil || b == nil {
		return allox.NullBlock
	}
	return allox.BlockFromBytes(b)
}

// DeallocateBlock frees b back to the underlying osmem.Heap.
func (a *MallocBlockAllocator) DeallocateBlock(b allox.Block) {
	if b.IsNull() {
		return
	}
	_ = a.heap.Free(b.Bytes())
}

// NextBlockSize reports the fixed block size.
func (a *MallocBlockAllocator) NextBlockSize() uintptr { return a.blockSize }

var _ allox.BlockAllocator = (*MallocBlockAllocator)(nil)

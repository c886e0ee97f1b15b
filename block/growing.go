// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/go-allox/allox"
	"github.com/go-allox/allox/osmem"
)

// GrowingMallocBlockAllocator hands out osmem.Heap-backed blocks of
// defaultSize * growth.Multiplier() bytes, advancing growth after every
// successful allocation.
type GrowingMallocBlockAllocator struct {
	defaultSize uintptr
	growth      allox.GrowthMultiplier
	heap        osmem.Heap
}

// NewGrowingMallocBlockAllocator constructs a GrowingMallocBlockAllocator.
func NewGrowingMallocBlockAllocator(defaultSize uintptr, growth allox.GrowthMultiplier) *GrowingMallocBlockAllocator {
	return &GrowingMallocBlockAllocator{defaultSize: defaultSize, growth: growth}
}

func (a *GrowingMallocBlockAllocator) size() uintptr {
	return a.defaultSize * uintptr(a.growth.Multiplier())
}

// AllocateBlock mallocs the next grown size via osmem.
func (a *GrowingMallocBlockAllocator) AllocateBlock() allox.Block {
	b, err := a.heap.Malloc(int(a.size()))
	if err != nil || b == nil {
		return allox.NullBlock
	}
	a.growth.Grow()
	return allox.BlockFromBytes(b)
}

// DeallocateBlock frees b back to the underlying osmem.Heap.
func (a *GrowingMallocBlockAllocator) DeallocateBlock(b allox.Block) {
	if b.IsNull() {
		return
	}
	_ = a.heap.Free(b.Bytes())
}

// NextBlockSize reports the size the next AllocateBlock call will
// produce.
func (a *GrowingMallocBlockAllocator) NextBlockSize() uintptr { return a.size() }

var _ allox.BlockAllocator = (*GrowingMallocBlockAllocator)(nil)

// GrowingNewBlockAllocator hands out GC-visible, make-backed blocks of
// defaultSize * growth.Multiplier() bytes, advancing growth after every
// successful allocation.
type GrowingNewBlockAllocator struct {
	defaultSize uintptr
	growth      allox.GrowthMultiplier
}

// NewGrowingNewBlockAllocator constructs a GrowingNewBlockAllocator.
func NewGrowingNewBlockAllocator(defaultSize uintptr, growth allox.GrowthMultiplier) *GrowingNewBlockAllocator {
	return &GrowingNewBlockAllocator{defaultSize: defaultSize, growth: growth}
}

func (a *GrowingNewBlockAllocator) size() uintptr {
	return a.defaultSize * uintptr(a.growth.Multiplier())
}

// AllocateBlock makes the next grown size.
func (a *GrowingNewBlockAllocator) AllocateBlock() allox.Block {
	size := a.size()
	if size == 0 {
		return allox.NullBlock
	}
	b := allox.BlockFromBytes(make([]byte, size))
	a.growth.Grow()
	return b
}

// DeallocateBlock is a no-op; the garbage collector reclaims b.
func (a *GrowingNewBlockAllocator) DeallocateBlock(allox.Block) {}

// NextBlockSize reports the size the next AllocateBlock call will
// produce.
func (a *GrowingNewBlockAllocator) NextBlockSize() uintptr { return a.size() }

var _ allox.BlockAllocator = (*GrowingNewBlockAllocator)(nil)

// GrowingAlignedBlockAllocator hands out osmem.AlignedMalloc-backed
// blocks of defaultSize * growth.Multiplier() bytes, each aligned to
// align, advancing growth after every successful allocation.
type GrowingAlignedBlockAllocator struct {
	defaultSize uintptr
	align       uintptr
	growth      allox.GrowthMultiplier
}

// NewGrowingAlignedBlockAllocator constructs a
// GrowingAlignedBlockAllocator.
func NewGrowingAlignedBlockAllocator(defaultSize, align uintptr, growth allox.GrowthMultiplier) *GrowingAlignedBlockAllocator {
	return &GrowingAlignedBlockAllocator{defaultSize: defaultSize, align: align, growth: growth}
}

func (a *GrowingAlignedBlockAllocator) size() uintptr {
	return a.defaultSize * uintptr(a.growth.Multiplier())
}

// AllocateBlock allocates the next grown, aligned size.
func (a *GrowingAlignedBlockAllocator) AllocateBlock() allox.Block {
	b := osmem.AlignedMalloc(a.size(), a.align)
	if !b.IsNull() {
		a.growth.Grow()
	}
	return b
}

// DeallocateBlock frees b back to osmem.
func (a *GrowingAlignedBlockAllocator) DeallocateBlock(b allox.Block) {
	osmem.AlignedFree(b)
}

// NextBlockSize reports the size the next AllocateBlock call will
// produce.
func (a *GrowingAlignedBlockAllocator) NextBlockSize() uintptr { return a.size() }

// NextBlockAlignment reports the fixed alignment.
func (a *GrowingAlignedBlockAllocator) NextBlockAlignment() uintptr { return a.align }

var _ allox.BlockAllocator = (*GrowingAlignedBlockAllocator)(nil)

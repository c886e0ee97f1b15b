// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"unsafe"

	"github.com/go-allox/allox"
	"github.com/go-allox/allox/osmem"
)

// virtualBlockCore reserves Pages*PageSize bytes of address space up
// front and commits it one growth-sized span at a time as AllocateBlock
// is called, matching spec.md §4.4.5's (base, pages, active_page_index,
// cache, growth) state. Decommit is deferred to Release, which the
// caller must invoke when the allocator's lifetime ends since Go has no
// destructors to do it implicitly.
type virtualBlockCore struct {
	region          *osmem.VirtualRegion
	pageSize        uintptr
	pages           uintptr
	activePageIndex uintptr
	cache           allox.BlockCache
	growth          allox.GrowthMultiplier
}

func newVirtualBlockCore(pages uintptr, growth allox.GrowthMultiplier) (*virtualBlockCore, error) {
	if growth == nil {
		growth = allox.NoGrowth{}
	}
	pageSize := osmem.PageSize()
	region, err := osmem.Reserve(pages * pageSize)
	if err != nil {
		return nil, err
	}
	return &virtualBlockCore{region: region, pageSize: pageSize, pages: pages, growth: growth}, nil
}

func (c *virtualBlockCore) AllocateBlock() allox.Block {
	if !c.cache.Empty() {
		return c.cache.Request()
	}
	if c.activePageIndex >= c.pages {
		return allox.NullBlock
	}

	spanPages := uintptr(c.growth.Multiplier())
	if c.activePageIndex+spanPages > c.pages {
		spanPages = c.pages - c.activePageIndex
	}

	offset := c.activePageIndex * c.pageSize
	size := spanPages * c.pageSize
	if err := c.region.Commit(offset + size); err != nil {
		return allox.NullBlock
	}

	base := unsafe.Pointer(uintptr(c.region.Block().Ptr) + offset)
	c.activePageIndex += spanPages
	c.growth.Grow()
	return allox.Block{Ptr: base, Size: size}
}

func (c *virtualBlockCore) DeallocateBlock(b allox.Block) {
	if b.IsNull() {
		return
	}
	c.cache.Store(b)
}

func (c *virtualBlockCore) NextBlockSize() uintptr {
	if !c.cache.Empty() {
		return c.cache.Peek().Size
	}
	if c.activePageIndex >= c.pages {
		return 0
	}
	spanPages := uintptr(c.growth.Multiplier())
	if c.activePageIndex+spanPages > c.pages {
		spanPages = c.pages - c.activePageIndex
	}
	return spanPages * c.pageSize
}

// Release returns the entire virtual reservation to the OS. The
// allocator must not be used afterward.
func (c *virtualBlockCore) Release() error { return c.region.Release() }

// VirtualBlockAllocator hands out one committed page per AllocateBlock
// call from a Pages*PageSize virtual reservation.
type VirtualBlockAllocator struct {
	*virtualBlockCore
}

// NewVirtualBlockAllocator reserves pages pages of address space.
func NewVirtualBlockAllocator(pages uintptr) (*VirtualBlockAllocator, error) {
	core, err := newVirtualBlockCore(pages, allox.NoGrowth{})
	if err != nil {
		return nil, err
	}
	return &VirtualBlockAllocator{virtualBlockCore: core}, nil
}

var _ allox.BlockAllocator = (*VirtualBlockAllocator)(nil)

// GrowingVirtualBlockAllocator is VirtualBlockAllocator with a
// GrowthMultiplier controlling how many pages each successive block
// spans.
type GrowingVirtualBlockAllocator struct {
	*virtualBlockCore
}

// NewGrowingVirtualBlockAllocator reserves pages pages of address space,
// handing out growth.Multiplier() pages per block, advancing growth
// after each successful allocation.
func NewGrowingVirtualBlockAllocator(pages uintptr, growth allox.GrowthMultiplier) (*GrowingVirtualBlockAllocator, error) {
	core, err := newVirtualBlockCore(pages, growth)
	if err != nil {
		return nil, err
	}
	return &GrowingVirtualBlockAllocator{virtualBlockCore: core}, nil
}

var _ allox.BlockAllocator = (*GrowingVirtualBlockAllocator)(nil)

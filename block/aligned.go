// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"github.com/go-allox/allox"
	"github.com/go-allox/allox/osmem"
)

// AlignedBlockAllocator allocates one block per request via
// osmem.AlignedMalloc, so every returned block starts on an Align-byte
// boundary rather than whatever the OS heap happens to hand back.
type AlignedBlockAllocator struct {
	blockSize uintptr
	align     uintptr
}

// NewAlignedBlockAllocator constructs an AlignedBlockAllocator handing
// out blockSize-byte blocks aligned to align, which must be a power of
// two.
func NewAlignedBlockAllocator(blockSize, align uintptr) *AlignedBlockAllocator {
	return &AlignedBlockAllocator{blockSize: blockSize, align: align}
}

// AllocateBlock returns a new aligned block, or allox.NullBlock if the
// underlying allocation fails.
func (a *AlignedBlockAllocator) AllocateBlock() allox.Block {
	if a.blockSize == 0 {
		return allox.NullBlock
	}
	return osmem.AlignedMalloc(a.blockSize, a.align)
}

// DeallocateBlock frees b back to osmem.
func (a *AlignedBlockAllocator) DeallocateBlock(b allox.Block) {
	osmem.AlignedFree(b)
}

// NextBlockSize reports the fixed block size.
func (a *AlignedBlockAllocator) NextBlockSize() uintptr { return a.blockSize }

// NextBlockAlignment reports the fixed block alignment.
func (a *AlignedBlockAllocator) NextBlockAlignment() uintptr { return a.align }

var _ allox.BlockAllocator = (*AlignedBlockAllocator)(nil)

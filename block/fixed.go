// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import (
	"unsafe"

	"github.com/timandy/routine"

	"github.com/go-allox/allox"
)

// fixedBlockAllocator carves a single contiguous buffer into equal-size
// blocks on construction and threads them through an allox.BlockCache.
// It is the shared core behind StaticBlockAllocator, StackBlockAllocator
// and each goroutine's private slice of ThreadLocalBlockAllocator --
// the three spec-named variants differ only in whose storage they are
// handed, not in algorithm.
type fixedBlockAllocator struct {
	blockSize uintptr
	cache     allox.BlockCache
}

func newFixedBlockAllocator(storage []byte, blockSize uintptr) *fixedBlockAllocator {
	a := &fixedBlockAllocator{blockSize: blockSize}
	n := uintptr(len(storage)) / blockSize
	base := unsafe.Pointer(unsafe.SliceData(storage))
	for i := uintptr(0); i < n; i++ {
		block := allox.Block{
			Ptr:  unsafe.Pointer(uintptr(base) + i*blockSize),
			Size: blockSize,
		}
		a.cache.Store(block)
	}
	return a
}

func (a *fixedBlockAllocator) AllocateBlock() allox.Block {
	return a.cache.Request()
}

func (a *fixedBlockAllocator) DeallocateBlock(b allox.Block) {
	if b.IsNull() {
		return
	}
	a.cache.Store(b)
}

func (a *fixedBlockAllocator) NextBlockSize() uintptr { return a.blockSize }

// StaticBlockAllocator carves a caller-supplied, process-lifetime
// storage buffer into fixed-size blocks. Callers wanting true static
// duration back it with a package-level []byte var; the allocator
// itself imposes no lifetime beyond "as long as storage is reachable".
type StaticBlockAllocator struct {
	*fixedBlockAllocator
}

// NewStaticBlockAllocator carves storage into len(storage)/blockSize
// blocks.
func NewStaticBlockAllocator(storage []byte, blockSize uintptr) *StaticBlockAllocator {
	return &StaticBlockAllocator{fixedBlockAllocator: newFixedBlockAllocator(storage, blockSize)}
}

var _ allox.BlockAllocator = (*StaticBlockAllocator)(nil)

// StackBlockAllocator is identical in algorithm to StaticBlockAllocator;
// it exists as a distinct type so callers document, at the call site,
// that storage has automatic (function-scope) rather than static
// duration -- typically a local array passed in by the caller.
type StackBlockAllocator struct {
	*fixedBlockAllocator
}

// NewStackBlockAllocator carves storage into len(storage)/blockSize
// blocks.
func NewStackBlockAllocator(storage []byte, blockSize uintptr) *StackBlockAllocator {
	return &StackBlockAllocator{fixedBlockAllocator: newFixedBlockAllocator(storage, blockSize)}
}

var _ allox.BlockAllocator = (*StackBlockAllocator)(nil)

// ThreadLocalBlockAllocator gives every goroutine that calls into it its
// own fixedBlockAllocator, each carved from a freshly made storage
// buffer the first time that goroutine touches it. Go has no
// language-level thread-local storage; routine.ThreadLocal supplies the
// genuine goroutine-local slot this needs.
type ThreadLocalBlockAllocator struct {
	blockSize uintptr
	blocks    uintptr
	tls       routine.ThreadLocal[*fixedBlockAllocator]
}

// NewThreadLocalBlockAllocator constructs a ThreadLocalBlockAllocator;
// each goroutine that uses it gets its own blocks*blockSize-byte buffer
// carved into blocks equal blocks.
func NewThreadLocalBlockAllocator(blockSize, blocks uintptr) *ThreadLocalBlockAllocator {
	return &ThreadLocalBlockAllocator{
		blockSize: blockSize,
		blocks:    blocks,
		tls:       routine.NewThreadLocal[*fixedBlockAllocator](),
	}
}

func (a *ThreadLocalBlockAllocator) local() *fixedBlockAllocator {
	f := a.tls.Get()
	if f == nil {
		storage := make([]byte, a.blockSize*a.blocks)
		f = newFixedBlockAllocator(storage, a.blockSize)
		a.tls.Set(f)
	}
	return f
}

// AllocateBlock pops a block from the calling goroutine's private cache.
func (a *ThreadLocalBlockAllocator) AllocateBlock() allox.Block {
	return a.local().AllocateBlock()
}

// DeallocateBlock pushes b back onto the calling goroutine's private
// cache. b must have been allocated by the same goroutine.
func (a *ThreadLocalBlockAllocator) DeallocateBlock(b allox.Block) {
	a.local().DeallocateBlock(b)
}

// NextBlockSize reports the fixed block size.
func (a *ThreadLocalBlockAllocator) NextBlockSize() uintptr { return a.blockSize }

var _ allox.BlockAllocator = (*ThreadLocalBlockAllocator)(nil)

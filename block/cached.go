// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/go-allox/allox"

// CachedBlockAllocator wraps a block allocator B, preferring a
// previously deallocated block over a fresh call through to B.
type CachedBlockAllocator[B allox.BlockAllocator] struct {
	Inner B
	cache allox.BlockCache
}

// NewCachedBlockAllocator wraps inner with an initially empty cache.
func NewCachedBlockAllocator[B allox.BlockAllocator](inner B) *CachedBlockAllocator[B] {
	return &CachedBlockAllocator[B]{Inner: inner}
}

// AllocateBlock returns a cached block if one is available, else
// forwards to Inner.
func (a *CachedBlockAllocator[B]) AllocateBlock() allox.Block {
	if !a.cache.Empty() {
		return a.cache.Request()
	}
	return a.Inner.AllocateBlock()
}

// DeallocateBlock stores b in the cache rather than returning it to
// Inner immediately.
func (a *CachedBlockAllocator[B]) DeallocateBlock(b allox.Block) {
	if b.IsNull() {
		return
	}
	a.cache.Store(b)
}

// NextBlockSize reports the cached block's size if one is queued, else
// Inner's.
func (a *CachedBlockAllocator[B]) NextBlockSize() uintptr {
	if !a.cache.Empty() {
		return a.cache.Peek().Size
	}
	return allox.NextBlockSize(a.Inner)
}

// Release returns every cached block to Inner, draining the cache. This
// stands in for the teacher language's destructor-time cache drain; call
// it explicitly when retiring the allocator.
func (a *CachedBlockAllocator[B]) Release() {
	for !a.cache.Empty() {
		a.Inner.DeallocateBlock(a.cache.Request())
	}
}

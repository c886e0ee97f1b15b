// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/go-allox/allox"

// PolicyBlockAllocator composes a block allocator B with the same
// cross-cutting Tagger/Tracker/Lockable policies arena.Arena applies at
// byte granularity, but at whole-block granularity -- no BoundsChecker,
// since a block allocator has no room to inflate a block's size the way
// an arena inflates a byte request.
type PolicyBlockAllocator[B allox.BlockAllocator, T allox.Tagger, K allox.Tracker, L allox.Lockable] struct {
	Inner   B
	Tagger  T
	Tracker K
	Lock    L
}

// NewPolicyBlockAllocator composes inner with the given policies.
func NewPolicyBlockAllocator[B allox.BlockAllocator, T allox.Tagger, K allox.Tracker, L allox.Lockable](inner B, tagger T, tracker K, lock L) *PolicyBlockAllocator[B, T, K, L] {
	return &PolicyBlockAllocator[B, T, K, L]{Inner: inner, Tagger: tagger, Tracker: tracker, Lock: lock}
}

// AllocateBlock acquires Lock, forwards to Inner, tags and tracks a
// successful result, and releases Lock on every exit path.
func (a *PolicyBlockAllocator[B, T, K, L]) AllocateBlock() allox.Block {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	b := a.Inner.AllocateBlock()
	if b.IsNull() {
		return b
	}
	a.Tagger.TagAllocation(b.Ptr, b.Size)
	a.Tracker.OnAllocate(allox.BlockAllocInfo(a.Inner), b.Ptr, b.Size, allox.NextBlockAlignment(a.Inner))
	return b
}

// DeallocateBlock acquires Lock, tags and tracks the deallocation, then
// forwards to Inner, releasing Lock on every exit path.
func (a *PolicyBlockAllocator[B, T, K, L]) DeallocateBlock(b allox.Block) {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	if b.IsNull() {
		return
	}
	a.Tagger.TagDeallocation(b.Ptr, b.Size)
	a.Tracker.OnDeallocate(allox.BlockAllocInfo(a.Inner), b.Ptr, b.Size)
	a.Inner.DeallocateBlock(b)
}

// NextBlockSize forwards to Inner.
func (a *PolicyBlockAllocator[B, T, K, L]) NextBlockSize() uintptr {
	return allox.NextBlockSize(a.Inner)
}

// NextBlockAlignment forwards to Inner.
func (a *PolicyBlockAllocator[B, T, K, L]) NextBlockAlignment() uintptr {
	return allox.NextBlockAlignment(a.Inner)
}

// Finalize invokes Tracker.Finalize, standing in for the teacher
// language's destructor-time leak check. Call it explicitly when
// retiring the allocator.
func (a *PolicyBlockAllocator[B, T, K, L]) Finalize() {
	a.Tracker.Finalize(allox.BlockAllocInfo(a.Inner))
}

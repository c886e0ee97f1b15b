// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/go-allox/allox"

// NamedBlockAllocator decorates an allox.BlockAllocator B with a
// constant name, overriding Info() to report it; every other operation
// forwards unchanged. Adding a name demotes IsStateless to false.
type NamedBlockAllocator[B allox.BlockAllocator] struct {
	Inner B
	name  string
}

// NewNamedBlockAllocator wraps inner under the given diagnostic name.
func NewNamedBlockAllocator[B allox.BlockAllocator](inner B, name string) *NamedBlockAllocator[B] {
	return &NamedBlockAllocator[B]{Inner: inner, name: name}
}

// AllocateBlock forwards to Inner.
func (a *NamedBlockAllocator[B]) AllocateBlock() allox.Block { return a.Inner.AllocateBlock() }

// DeallocateBlock forwards to Inner.
func (a *NamedBlockAllocator[B]) DeallocateBlock(b allox.Block) { a.Inner.DeallocateBlock(b) }

// NextBlockSize forwards to Inner.
func (a *NamedBlockAllocator[B]) NextBlockSize() uintptr { return allox.NextBlockSize(a.Inner) }

// NextBlockAlignment forwards to Inner.
func (a *NamedBlockAllocator[B]) NextBlockAlignment() uintptr {
	return allox.NextBlockAlignment(a.Inner)
}

// Info reports a's registered name, deduplicated against every other
// NamedBlockAllocator sharing that name via allox.RegisterName.
func (a *NamedBlockAllocator[B]) Info() allox.Info {
	return allox.RegisterName(a.name, allox.BlockAllocInfo(a.Inner).Address)
}

// IsStateless always reports false: a name demotes statelessness.
func (a *NamedBlockAllocator[B]) IsStateless() bool { return false }

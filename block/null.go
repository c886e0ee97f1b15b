// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package block

import "github.com/go-allox/allox"

// NullBlockAllocator produces and accepts only the null block. Its zero
// value is ready for use.
type NullBlockAllocator struct{}

// AllocateBlock always returns allox.NullBlock.
func (NullBlockAllocator) AllocateBlock() allox.Block { return allox.NullBlock }

// DeallocateBlock accepts only the null block; anything else is
// undefined behavior, mirroring the absence of any real backing memory
// to return.
func (NullBlockAllocator) DeallocateBlock(allox.Block) {}

// IsStateless reports true: every NullBlockAllocator is interchangeable.
func (NullBlockAllocator) IsStateless() bool { return true }

var _ allox.BlockAllocator = NullBlockAllocator{}

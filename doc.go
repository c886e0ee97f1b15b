// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package allox implements a composable memory-allocator framework.
//
// It is built from small, orthogonal parts: a pair of core concepts
// (Allocator, byte-granular, and BlockAllocator, block-granular), a set of
// concrete allocation strategies (bump, pool, growing virtual memory, ...)
// living in sub-packages, and a set of cross-cutting policies (tagging,
// bounds checking, tracking, locking) that decorate any of them into an
// arena. Storage adapters and type-erased references glue the pieces
// together so callers can compose bespoke strategies without inheritance.
//
// This package holds the data model shared by every sub-package: Block,
// AllocatorInfo, the intrusive Freelist/BlockCache, pointer alignment
// utilities, growth multipliers, the Allocator/BlockAllocator interfaces
// and their trait helpers, the Lockable policy, and the process-wide
// failure handlers.
package allox

// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alloc implements the byte-granular allocation strategies: bump
// pointer allocators (forward/backward, with and without LIFO
// deallocation), a fixed-chunk pool, and the min-aligned decorator. Each
// type is constructed over a single allox.Block and satisfies
// allox.Allocator plus whichever optional capability interfaces its
// algorithm supports.
package alloc

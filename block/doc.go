// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package block implements the block_allocator hierarchy: fixed-size
// sources (null, heap-backed, aligned, static/thread-local/stack),
// virtual-memory-backed sources, growing heap variants, and the
// cached/named/policy decorators that wrap any of them.
package block

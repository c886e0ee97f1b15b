// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmem

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// alignedHeap is the process-wide Heap backing AlignedMalloc/AlignedFree.
// Over-allocation accounting is per call, not per Heap, so sharing one
// instance across callers is safe.
var alignedHeap Heap

// AlignedMalloc allocates size bytes aligned to align, which must be a
// power of two, by over-allocating from Heap and storing the raw pointer
// Heap handed back just before the aligned region it returns -- the
// classic over-allocate-and-remember trick, since Heap itself only
// guarantees mallocAllign (16-byte) alignment.
func AlignedMalloc(size, align uintptr) allox.Block {
	if size == 0 {
		return allox.NullBlock
	}
	if !allox.IsPowerOfTwo(align) {
		panic("osmem: AlignedMalloc align must be a power of two")
	}
	if align < unsafe.Sizeof(uintptr(0)) {
		align = unsafe.Sizeof(uintptr(0))
	}

	raw, err := alignedHeap.UnsafeMalloc(int(size + align - 1 + unsafe.Sizeof(uintptr(0))))
	if err != nil || raw == nil {
		return allox.NullBlock
	}

	base := uintptr(raw) + unsafe.Sizeof(uintptr(0))
	aligned, _ := allox.AlignForward(unsafe.Pointer(base), align, 0)
	*(*uintptr)(unsafe.Pointer(uintptr(aligned) - unsafe.Sizeof(uintptr(0)))) = uintptr(raw)

	return allox.Block{Ptr: aligned, Size: size}
}

// AlignedFree releases a Block obtained from AlignedMalloc. It is a no-op
// on the null block.
func AlignedFree(b allox.Block) {
	if b.IsNull() {
		return
	}
	raw := *(*uintptr)(unsafe.Pointer(uintptr(b.Ptr) - unsafe.Sizeof(uintptr(0))))
	_ = alignedHeap.UnsafeFree(unsafe.Pointer(raw))
}

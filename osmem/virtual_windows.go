// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package osmem

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/go-allox/allox"
)

// VirtualRegion is a reserved range of address space, some prefix of
// which may currently be committed. The zero value is not usable;
// obtain one from Reserve.
type VirtualRegion struct {
	handle    syscall.Handle
	block     allox.Block
	committed uintptr
}

// Block returns the reserved address range backing r.
func (r *VirtualRegion) Block() allox.Block { return r.block }

// Committed reports how many bytes at the front of r are currently
// backed by physical storage.
func (r *VirtualRegion) Committed() uintptr { return r.committed }

// PageSize reports the granularity Reserve/Commit/Decommit round to.
func PageSize() uintptr { return uintptr(os.Getpagesize()) }

// Reserve reserves size bytes of address space without committing any
// of it, rounding size up to a whole number of pages. Windows has no
// PROT_NONE reservation distinct from a file mapping, so the region is
// a zero-fill mapping committed lazily by the OS; Commit/Decommit below
// track the committed prefix for this module's own bookkeeping even
// though the OS itself already demand-pages it.
func Reserve(size uintptr) (*VirtualRegion, error) {
	size = allox.RoundUpToMultiple(size, PageSize())
	if size == 0 {
		size = PageSize()
	}

	if Trace {
		defer func() {
			fmt.Fprintf(os.Stderr, "osmem.Reserve(%#x)\n", size)
		}()
	}

	maxSizeHigh := uint32(int64(size) >> 32)
	maxSizeLow := uint32(int64(size) & 0xFFFFFFFF)
	h, err := syscall.CreateFileMapping(syscall.Handle(^uintptr(0)), nil, syscall.PAGE_READWRITE, maxSizeHigh, maxSizeLow, nil)
	if h == 0 {
		return nil, os.NewSyscallError("CreateFileMapping", err)
	}

	addr, err := syscall.MapViewOfFile(h, syscall.FILE_MAP_WRITE, 0, 0, size)
	if addr == 0 {
		syscall.CloseHandle(h)
		return nil, os.NewSyscallError("MapViewOfFile", err)
	}

	b := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	return &VirtualRegion{handle: h, block: allox.BlockFromBytes(b)}, nil
}

// Commit is a bookkeeping no-op on Windows -- MapViewOfFile already
// backs the whole reservation -- but still validates and records the
// committed prefix so callers see consistent behavior across platforms.
func (r *VirtualRegion) Commit(size uintptr) error {
	size = allox.RoundUpToMultiple(size, PageSize())
	if size > r.block.Size {
		return fmt.Errorf("osmem: commit %#x exceeds reservation %#x", size, r.block.Size)
	}
	if size > r.committed {
		r.committed = size
	}
	return nil
}

// Decommit resets the tracked committed prefix to zero. It does not
// return physical pages to the OS on Windows.
func (r *VirtualRegion) Decommit() error {
	r.committed = 0
	return nil
}

// Release unmaps and closes the reservation. r must not be used
// afterward.
func (r *VirtualRegion) Release() error {
	if r.block.IsNull() {
		return nil
	}

	addr := uintptr(r.block.Ptr)
	if err := syscall.UnmapViewOfFile(addr); err != nil {
		return fmt.Errorf("osmem: release: %w", err)
	}
	err := syscall.CloseHandle(r.handle)
	*r = VirtualRegion{}
	if err != nil {
		return fmt.Errorf("osmem: release: close handle: %w", err)
	}
	return nil
}

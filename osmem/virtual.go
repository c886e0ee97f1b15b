// Copyright 2017 The Memory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build darwin dragonfly freebsd linux openbsd solaris netbsd

package osmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/go-allox/allox"
)

// VirtualRegion is a reserved range of address space, some prefix of
// which may currently be committed. The zero value is not usable;
// obtain one from Reserve.
type VirtualRegion struct {
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
// of it, rounding size up to a whole number of pages. The returned
// region's pages are PROT_NONE until Commit is called on them.
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

	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("osmem: reserve %#x bytes: %w", size, err)
	}

	return &VirtualRegion{block: allox.BlockFromBytes(b)}, nil
}

// Commit backs the first size bytes of r with physical storage,
// rounding up to a whole number of pages, and makes them
// readable/writable. Committing a prefix already committed is a no-op
// for that prefix.
func (r *VirtualRegion) Commit(size uintptr) error {
	size = allox.RoundUpToMultiple(size, PageSize())
	if size <= r.committed {
		return nil
	}

	b := r.block.Bytes()[:size]
	if err := unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return fmt.Errorf("osmem: commit %#x bytes: %w", size, err)
	}

	r.committed = size
	return nil
}

// Decommit releases the physical storage backing r without releasing
// the address-space reservation; committed pages return to PROT_NONE.
// It is the caller's responsibility to have nothing live in the
// decommitted range.
func (r *VirtualRegion) Decommit() error {
	if r.committed == 0 {
		return nil
	}

	b := r.block.Bytes()[:r.committed]
	if err := unix.Mprotect(b, unix.PROT_NONE); err != nil {
		return fmt.Errorf("osmem: decommit %#x bytes: %w", r.committed, err)
	}

	r.committed = 0
	return nil
}

// Release returns the entire reservation, committed or not, to the OS.
// r must not be used afterward.
func (r *VirtualRegion) Release() error {
	if r.block.IsNull() {
		return nil
	}

	if err := unix.Munmap(r.block.Bytes()); err != nil {
		return fmt.Errorf("osmem: release %#x bytes: %w", r.block.Size, err)
	}

	*r = VirtualRegion{}
	return nil
}

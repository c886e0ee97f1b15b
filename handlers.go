package allox

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"
)

// OutOfMemoryFunc is invoked by Allocate (the non-try variant) when
// try-allocation keeps failing. requested is the size that could not be
// satisfied.
type OutOfMemoryFunc func(info Info, requested uintptr)

// LeakFunc is invoked when an arena is torn down with outstanding
// allocations still live.
type LeakFunc func(info Info, leakedPointer unsafe.Pointer, leakedBytes uintptr)

// BufferOverflowFunc is invoked when a bounds checker detects a guard
// mismatch on deallocation.
type BufferOverflowFunc func(info Info, p unsafe.Pointer, size uintptr)

// DoubleDeleteFunc is invoked when a tracker detects the same pointer
// deallocated twice.
type DoubleDeleteFunc func(info Info, p unsafe.Pointer, size uintptr)

// StompFunc is invoked when a tagger detects a write into memory after
// it was deallocated.
type StompFunc func(info Info, p unsafe.Pointer, size uintptr)

func abortf(kind string, info Info, p unsafe.Pointer, size uintptr) {
	fmt.Fprintf(os.Stderr, "allox: %s: %s p=%p size=%#x\n", kind, info, p, size)
	os.Exit(2)
}

// OutOfMemoryHandler is the process-wide, thread-safe-swappable hook run
// by Allocate on persistent allocation failure. Its default writes a
// diagnostic and aborts.
var OutOfMemoryHandler = newHandle[OutOfMemoryFunc](func(info Info, requested uintptr) {
	fmt.Fprintf(os.Stderr, "allox: out of memory: %s requested=%#x\n", info, requested)
	os.Exit(2)
})

// LeakHandler is the process-wide hook run by an arena's destructor when
// its Tracker reports a nonzero net outstanding count.
var LeakHandler = newHandle[LeakFunc](func(info Info, p unsafe.Pointer, bytes uintptr) {
	abortf("leak", info, p, bytes)
})

// BufferOverflowHandler is the process-wide hook run when a
// BoundsChecker detects a guard mismatch.
var BufferOverflowHandler = newHandle[BufferOverflowFunc](func(info Info, p unsafe.Pointer, size uintptr) {
	abortf("buffer overflow", info, p, size)
})

// DoubleDeleteHandler is the process-wide hook run when a Tracker
// detects the same allocation freed twice.
var DoubleDeleteHandler = newHandle[DoubleDeleteFunc](func(info Info, p unsafe.Pointer, size uintptr) {
	abortf("double delete", info, p, size)
})

// StompHandler is the process-wide hook run when a Tagger detects a
// write into freed memory.
var StompHandler = newHandle[StompFunc](func(info Info, p unsafe.Pointer, size uintptr) {
	abortf("stomp", info, p, size)
})

// handle is a value-type handle over a process-wide function pointer
// slot, swappable with Set and observable with Get. Generalized from the
// teacher's single package-level `trace` flag into a reusable registry
// entry, since spec.md §6 calls for several independent handler globals.
type handle[F any] struct {
	p atomic.Pointer[F]
}

func newHandle[F any](initial F) *handle[F] {
	h := &handle[F]{}
	h.p.Store(&initial)
	return h
}

// Get returns the currently installed function.
func (h *handle[F]) Get() F {
	return *h.p.Load()
}

// Set installs fn as the new handler and returns the previous one so
// callers can chain or later restore it.
func (h *handle[F]) Set(fn F) (previous F) {
	previous = *h.p.Swap(&fn)
	return previous
}

// OutOfMemoryHandle, LeakHandle, BufferOverflowHandle, DoubleDeleteHandle
// and StompHandle are exposed so callers can name the handle type, e.g.
// when writing a helper that temporarily swaps and restores a handler.
type (
	OutOfMemoryHandle    = handle[OutOfMemoryFunc]
	LeakHandle           = handle[LeakFunc]
	BufferOverflowHandle = handle[BufferOverflowFunc]
	DoubleDeleteHandle   = handle[DoubleDeleteFunc]
	StompHandle          = handle[StompFunc]
)

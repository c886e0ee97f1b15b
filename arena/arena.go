package arena

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// Arena is the central composite allocator: a byte strategy A wrapped
// with a Tagger, a Tracker, a BoundsChecker and a Lockable, exactly per
// spec.md §4.5. TryAllocate, TryAllocateOffset, Deallocate,
// DeallocateAll, Owns and Finalize acquire Lockable on entry and release
// it via defer on every exit path; Info and SupportsDeallocateAll take
// no lock.
type Arena[A allox.Allocator, Tagger allox.Tagger, Tracker allox.Tracker, BoundsChecker allox.BoundsChecker, Lockable allox.Lockable] struct {
	Inner   A
	Tagger  Tagger
	Tracker Tracker
	Bounds  BoundsChecker
	Lock    Lockable

	name string
}

// New wraps inner with the given policies. name is reported by Info().
func New[A allox.Allocator, T allox.Tagger, K allox.Tracker, B allox.BoundsChecker, L allox.Lockable](inner A, tagger T, tracker K, bounds B, lock L, name string) *Arena[A, T, K, B, L] {
	return &Arena[A, T, K, B, L]{Inner: inner, Tagger: tagger, Tracker: tracker, Bounds: bounds, Lock: lock, name: name}
}

// frontOverhead is half of the BoundsChecker's total overhead: the
// number of bytes placed before the user region. The remainder goes
// after it.
func frontOverhead(overhead uintptr) uintptr { return overhead / 2 }

// TryAllocate implements spec.md §4.5's five-step allocate sequence.
func (a *Arena[A, T, K, B, L]) TryAllocate(size, align uintptr) unsafe.Pointer {
	a.Lock.Lock()
	defer a.Lock.Unlock()
	return a.tryAllocateLocked(size, align, 0, false)
}

// TryAllocateOffset is the offset-aware form, present unconditionally
// since Arena panics through to Inner's own capability check via
// allox.TryAllocateOffset when Inner does not support it.
func (a *Arena[A, T, K, B, L]) TryAllocateOffset(size, align, offset uintptr) unsafe.Pointer {
	a.Lock.Lock()
	defer a.Lock.Unlock()
	return a.tryAllocateLocked(size, align, offset, true)
}

// tryAllocateLocked performs the raw allocation. The bounds checker's
// front overhead is folded into the offset passed to Inner so that the
// USER pointer (raw+front), not the raw pointer, satisfies align -- a
// nonzero front overhead therefore requires Inner to implement
// allox.ExtendedAllocator, same as an explicit caller-supplied offset
// would.
func (a *Arena[A, T, K, B, L]) tryAllocateLocked(size, align, offset uintptr, explicitOffset bool) unsafe.Pointer {
	overhead := a.Bounds.Overhead()
	front := frontOverhead(overhead)
	total := size + overhead
	totalOffset := offset + front

	var raw unsafe.Pointer
	if explicitOffset || totalOffset != 0 {
		raw = allox.TryAllocateOffset(a.Inner, total, align, totalOffset)
	} else {
		raw = allox.TryAllocate(a.Inner, total, align)
	}
	if raw == nil {
		return nil
	}

	userP := unsafe.Pointer(uintptr(raw) + front)
	a.Bounds.PlaceGuards(raw, size)
	a.Tagger.TagAllocation(userP, size)
	a.Tracker.OnAllocate(a.Info(), userP, size, align)
	return userP
}

// Deallocate implements spec.md §4.5's four-step deallocate sequence.
func (a *Arena[A, T, K, B, L]) Deallocate(p unsafe.Pointer, size uintptr) {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	overhead := a.Bounds.Overhead()
	front := frontOverhead(overhead)
	raw := unsafe.Pointer(uintptr(p) - front)

	if !a.Bounds.CheckGuards(raw, size) {
		allox.BufferOverflowHandler.Get()(a.Info(), p, size)
	}
	a.Tagger.TagDeallocation(p, size)
	a.Tracker.OnDeallocate(a.Info(), p, size)
	a.Inner.Deallocate(raw, size+overhead)
}

// DeallocateAll is provided iff A is allox.Truncatable; it panics
// otherwise via allox.DeallocateAll's own capability check.
func (a *Arena[A, T, K, B, L]) DeallocateAll() {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	a.Tracker.OnDeallocateAll(a.Info())
	allox.DeallocateAll(a.Inner)
}

// SupportsDeallocateAll reports whether Inner implements
// allox.Truncatable, i.e. whether DeallocateAll is safe to call.
func (a *Arena[A, T, K, B, L]) SupportsDeallocateAll() bool {
	return allox.SupportsTruncation(a.Inner)
}

// Owns forwards to Inner if it implements allox.OwnershipAware.
func (a *Arena[A, T, K, B, L]) Owns(p unsafe.Pointer) bool {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	overhead := a.Bounds.Overhead()
	raw := unsafe.Pointer(uintptr(p) - frontOverhead(overhead))
	return allox.Owns(a.Inner, raw)
}

// Info reports this arena's diagnostic name and address.
func (a *Arena[A, T, K, B, L]) Info() allox.Info {
	if a.name == "" {
		return allox.DefaultInfo(unsafe.Pointer(a))
	}
	return allox.Info{Name: a.name, Address: unsafe.Pointer(a)}
}

// Finalize is Arena's destructor-equivalent: Go has no destructors, so
// callers that need leak detection must call Finalize explicitly when
// the arena's lifetime ends. It calls Tracker.Finalize, which decides
// whether to report a leak (CountingTracker invokes the leak handler on
// a nonzero net outstanding count).
func (a *Arena[A, T, K, B, L]) Finalize() {
	a.Lock.Lock()
	defer a.Lock.Unlock()

	a.Tracker.Finalize(a.Info())
}

var (
	_ allox.Allocator         = (*Arena[allox.Allocator, allox.Tagger, allox.Tracker, allox.BoundsChecker, allox.Lockable])(nil)
	_ allox.ExtendedAllocator = (*Arena[allox.Allocator, allox.Tagger, allox.Tracker, allox.BoundsChecker, allox.Lockable])(nil)
	_ allox.Informative       = (*Arena[allox.Allocator, allox.Tagger, allox.Tracker, allox.BoundsChecker, allox.Lockable])(nil)
)

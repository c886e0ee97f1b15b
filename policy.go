package allox

import "unsafe"

// Tagger writes recognizable fill patterns into a region on allocation
// and deallocation, the cross-cutting policy arena_allocator and
// policy_block_allocator both apply around every allocate/deallocate.
type Tagger interface {
	TagAllocation(p unsafe.Pointer, size uintptr)
	TagDeallocation(p unsafe.Pointer, size uintptr)
}

// Tracker records allocate/deallocate events and reports on the net
// outstanding count at finalization, the other cross-cutting policy
// arena_allocator and policy_block_allocator both apply.
type Tracker interface {
	OnAllocate(info Info, p unsafe.Pointer, size, align uintptr)
	OnDeallocate(info Info, p unsafe.Pointer, size uintptr)
	OnDeallocateAll(info Info)
	Finalize(info Info)
}

// BoundsChecker places and verifies guard patterns around a user
// region, an arena_allocator-only policy since it must inflate the
// underlying allocation request by Overhead() bytes -- something a
// block allocator, which hands out whole fixed-size blocks, has no room
// to do without also changing the block size contract.
type BoundsChecker interface {
	Overhead() uintptr
	PlaceGuards(p unsafe.Pointer, size uintptr)
	CheckGuards(p unsafe.Pointer, size uintptr) bool
}

// NoopTagger writes nothing. Stateless.
type NoopTagger struct{}

func (NoopTagger) TagAllocation(unsafe.Pointer, uintptr)   {}
func (NoopTagger) TagDeallocation(unsafe.Pointer, uintptr) {}

// NoopTracker records nothing and never reports a leak. Stateless.
type NoopTracker struct{}

func (NoopTracker) OnAllocate(Info, unsafe.Pointer, uintptr, uintptr) {}
func (NoopTracker) OnDeallocate(Info, unsafe.Pointer, uintptr)        {}
func (NoopTracker) OnDeallocateAll(Info)                              {}
func (NoopTracker) Finalize(Info)                                     {}

// NoopBoundsChecker adds no overhead and always reports guards intact.
// Stateless.
type NoopBoundsChecker struct{}

func (NoopBoundsChecker) Overhead() uintptr                          { return 0 }
func (NoopBoundsChecker) PlaceGuards(unsafe.Pointer, uintptr)         {}
func (NoopBoundsChecker) CheckGuards(unsafe.Pointer, uintptr) bool    { return true }

var (
	_ Tagger        = NoopTagger{}
	_ Tracker       = NoopTracker{}
	_ BoundsChecker = NoopBoundsChecker{}
)

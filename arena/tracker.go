package arena

import (
	"sync/atomic"
	"unsafe"

	"github.com/go-allox/allox"
)

// CountingTracker records the net outstanding allocation count and byte
// total. Finalize invokes allox.LeakHandler if either is nonzero when
// the arena owning it is torn down.
type CountingTracker struct {
	count int64
	bytes int64
}

func (t *CountingTracker) OnAllocate(_ allox.Info, _ unsafe.Pointer, size, _ uintptr) {
	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.bytes, int64(size))
}

func (t *CountingTracker) OnDeallocate(_ allox.Info, _ unsafe.Pointer, size uintptr) {
	atomic.AddInt64(&t.count, -1)
	atomic.AddInt64(&t.bytes, -int64(size))
}

func (t *CountingTracker) OnDeallocateAll(allox.Info) {
	atomic.StoreInt64(&t.count, 0)
	atomic.StoreInt64(&t.bytes, 0)
}

func (t *CountingTracker) Finalize(info allox.Info) {
	count := atomic.LoadInt64(&t.count)
	bytes := atomic.LoadInt64(&t.bytes)
	if count != 0 || bytes != 0 {
		allox.LeakHandler.Get()(info, nil, uintptr(bytes))
	}
}

// Outstanding reports the current net allocation count and byte total.
func (t *CountingTracker) Outstanding() (count int64, bytes int64) {
	return atomic.LoadInt64(&t.count), atomic.LoadInt64(&t.bytes)
}

var _ allox.Tracker = (*CountingTracker)(nil)

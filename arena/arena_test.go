package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-allox/allox"
	"github.com/go-allox/allox/alloc"
)

func newTestArena(t *testing.T, storage []byte) *Arena[*alloc.BumpUpAllocator, PatternTagger, *CountingTracker, GuardBoundsChecker, allox.NullLock] {
	t.Helper()
	inner := alloc.NewBumpUpAllocator(allox.BlockFromBytes(storage))
	return New[*alloc.BumpUpAllocator, PatternTagger, *CountingTracker, GuardBoundsChecker, allox.NullLock](
		inner, PatternTagger{}, &CountingTracker{}, GuardBoundsChecker{}, allox.NullLock{}, "test-arena",
	)
}

func TestArenaTryAllocatePlacesGuardsAndTags(t *testing.T) {
	storage := make([]byte, 256)
	a := newTestArena(t, storage)

	p := a.TryAllocate(32, 8)
	require.NotNil(t, p)

	count, bytes := a.Tracker.Outstanding()
	assert.EqualValues(t, 1, count)
	assert.EqualValues(t, 32, bytes)

	region := unsafe.Slice((*byte)(p), 32)
	for _, b := range region {
		assert.Equal(t, allocFillByte, b)
	}
}

func TestArenaDeallocateClearsTrackerAndTags(t *testing.T) {
	storage := make([]byte, 256)
	a := newTestArena(t, storage)

	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)
	a.Deallocate(p, 16)

	count, bytes := a.Tracker.Outstanding()
	assert.Zero(t, count)
	assert.Zero(t, bytes)

	region := unsafe.Slice((*byte)(p), 16)
	for _, b := range region {
		assert.Equal(t, deallocFillByte, b)
	}
}

func TestArenaBoundsViolationInvokesHandler(t *testing.T) {
	storage := make([]byte, 256)
	a := newTestArena(t, storage)

	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)

	// Corrupt the back guard to simulate an overflow write.
	region := unsafe.Slice((*byte)(p), 16+guardSize)
	region[16] ^= 0xFF

	var invoked bool
	prev := allox.BufferOverflowHandler.Set(func(info allox.Info, pp unsafe.Pointer, size uintptr) {
		invoked = true
	})
	defer allox.BufferOverflowHandler.Set(prev)

	a.Deallocate(p, 16)
	assert.True(t, invoked, "a corrupted guard must invoke the buffer-overflow handler")
}

func TestArenaFinalizeReportsLeak(t *testing.T) {
	storage := make([]byte, 256)
	a := newTestArena(t, storage)

	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)

	var leaked uintptr
	var invoked bool
	prev := allox.LeakHandler.Set(func(info allox.Info, _ unsafe.Pointer, bytes uintptr) {
		invoked = true
		leaked = bytes
	})
	defer allox.LeakHandler.Set(prev)

	a.Finalize()
	assert.True(t, invoked)
	assert.EqualValues(t, 16, leaked)
}

func TestArenaDeallocateAllForwardsAndResetsTracker(t *testing.T) {
	storage := make([]byte, 256)
	a := newTestArena(t, storage)

	require.NotNil(t, a.TryAllocate(16, 8))
	require.NotNil(t, a.TryAllocate(16, 8))
	require.True(t, a.SupportsDeallocateAll())

	a.DeallocateAll()
	count, bytes := a.Tracker.Outstanding()
	assert.Zero(t, count)
	assert.Zero(t, bytes)
}

func TestArenaLockUnlockPairingEveryExitPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	lock := NewMockLockable(ctrl)

	storage := make([]byte, 256)
	inner := alloc.NewBumpUpAllocator(allox.BlockFromBytes(storage))
	a := New[*alloc.BumpUpAllocator, PatternTagger, *CountingTracker, GuardBoundsChecker, *MockLockable](
		inner, PatternTagger{}, &CountingTracker{}, GuardBoundsChecker{}, lock, "locked-arena",
	)

	// Success path: TryAllocate.
	lock.EXPECT().Lock()
	lock.EXPECT().Unlock()
	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)

	// Bounds-violation path: Deallocate must still release the lock.
	region := unsafe.Slice((*byte)(p), 16+guardSize)
	region[16] ^= 0xFF
	prev := allox.BufferOverflowHandler.Set(func(allox.Info, unsafe.Pointer, uintptr) {})
	defer allox.BufferOverflowHandler.Set(prev)

	lock.EXPECT().Lock()
	lock.EXPECT().Unlock()
	a.Deallocate(p, 16)

	// Finalize path.
	lock.EXPECT().Lock()
	lock.EXPECT().Unlock()
	a.Finalize()
}

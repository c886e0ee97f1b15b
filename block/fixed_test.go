package block

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticBlockAllocatorCarvesFixedBlocks(t *testing.T) {
	storage := make([]byte, 64)
	a := NewStaticBlockAllocator(storage, 16)

	first := a.AllocateBlock()
	require.False(t, first.IsNull())
	assert.EqualValues(t, 16, first.Size)

	for i := 0; i < 3; i++ {
		b := a.AllocateBlock()
		require.False(t, b.IsNull())
	}
	assert.True(t, a.AllocateBlock().IsNull(), "storage should be exhausted")

	a.DeallocateBlock(first)
	b := a.AllocateBlock()
	assert.Equal(t, first.Ptr, b.Ptr)
}

func TestStackBlockAllocatorIndependentFromStatic(t *testing.T) {
	storage := make([]byte, 32)
	a := NewStackBlockAllocator(storage, 16)
	b1 := a.AllocateBlock()
	b2 := a.AllocateBlock()
	require.False(t, b1.IsNull())
	require.False(t, b2.IsNull())
	assert.True(t, a.AllocateBlock().IsNull())
}

func TestThreadLocalBlockAllocatorIsolatesGoroutines(t *testing.T) {
	a := NewThreadLocalBlockAllocator(16, 1)

	main := a.AllocateBlock()
	require.False(t, main.IsNull())

	var wg sync.WaitGroup
	other := make(chan bool, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		// A fresh goroutine gets its own freshly carved storage, so it
		// can still allocate even though the main goroutine's single
		// block is already checked out.
		b := a.AllocateBlock()
		other <- !b.IsNull()
	}()
	wg.Wait()
	assert.True(t, <-other)
}

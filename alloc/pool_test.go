package alloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
)

func TestPoolAllocatorRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	block := allox.BlockFromBytes(buf)
	a := NewPoolAllocator(16, block)

	var chunks []unsafe.Pointer
	for i := 0; i < 4; i++ {
		p := a.TryAllocate(16, 8)
		require.NotNil(t, p)
		chunks = append(chunks, p)
	}
	assert.Nil(t, a.TryAllocate(16, 8), "pool should be exhausted after handing out every chunk")

	for _, p := range chunks {
		a.Deallocate(p, 16)
	}

	p := a.TryAllocate(16, 8)
	require.NotNil(t, p)
	assert.True(t, a.Owns(p))
}

func TestPoolAllocatorRejectsOversizedRequest(t *testing.T) {
	buf := make([]byte, 64)
	a := NewPoolAllocator(16, allox.BlockFromBytes(buf))
	assert.Nil(t, a.TryAllocate(17, 8))
}

func TestPoolAllocatorDeallocateAll(t *testing.T) {
	buf := make([]byte, 64)
	a := NewPoolAllocator(16, allox.BlockFromBytes(buf))
	for i := 0; i < 4; i++ {
		require.NotNil(t, a.TryAllocate(16, 8))
	}
	assert.Nil(t, a.TryAllocate(16, 8))

	a.DeallocateAll()
	for i := 0; i < 4; i++ {
		assert.NotNil(t, a.TryAllocate(16, 8))
	}
}

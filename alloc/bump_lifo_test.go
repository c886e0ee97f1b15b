package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-allox/allox"
)

func TestBumpUpLifoAllocatorRestoresCursor(t *testing.T) {
	buf := make([]byte, 64)
	a := NewBumpUpLifoAllocator(allox.BlockFromBytes(buf))

	p1 := a.TryAllocate(8, 8)
	require.NotNil(t, p1)
	p2 := a.TryAllocate(8, 8)
	require.NotNil(t, p2)

	before := a.current
	a.Deallocate(p2, 8)
	assert.NotEqual(t, before, a.current)

	p3 := a.TryAllocate(8, 8)
	require.NotNil(t, p3)
	assert.Equal(t, p2, p3, "freeing the most recent allocation should let the next request reuse its address")
}

func TestBumpDownLifoAllocatorRestoresCursor(t *testing.T) {
	buf := make([]byte, 64)
	a := NewBumpDownLifoAllocator(allox.BlockFromBytes(buf))

	p1 := a.TryAllocate(8, 8)
	require.NotNil(t, p1)
	p2 := a.TryAllocate(8, 8)
	require.NotNil(t, p2)

	a.Deallocate(p2, 8)
	p3 := a.TryAllocate(8, 8)
	require.NotNil(t, p3)
	assert.Equal(t, p2, p3)
}

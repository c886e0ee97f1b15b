package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedBlockAllocatorReportsName(t *testing.T) {
	a := NewNamedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(16), "widgets")
	info := a.Info()
	assert.Equal(t, "widgets", info.Name)
	assert.False(t, a.IsStateless())
}

func TestNamedBlockAllocatorSharesInfoAcrossSameName(t *testing.T) {
	a1 := NewNamedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(16), "shared-name")
	a2 := NewNamedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(16), "shared-name")

	i1 := a1.Info()
	i2 := a2.Info()
	require.Equal(t, i1.Name, i2.Name)
	assert.Equal(t, i1.Address, i2.Address, "two instances sharing a name should agree on the registered address")
}

func TestNamedBlockAllocatorForwardsAllocation(t *testing.T) {
	a := NewNamedBlockAllocator[*NewBlockAllocator](NewNewBlockAllocator(16), "forwarder")
	b := a.AllocateBlock()
	require.False(t, b.IsNull())
	a.DeallocateBlock(b)
}

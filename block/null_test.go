package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullBlockAllocatorAlwaysNull(t *testing.T) {
	var a NullBlockAllocator
	b := a.AllocateBlock()
	assert.True(t, b.IsNull())
	assert.True(t, a.IsStateless())
}

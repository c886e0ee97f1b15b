package allox

import "unsafe"

// bcNode is the header threaded into the first bytes of every cached
// block: its successor link and its own size, so the block can be
// reconstituted as a Block on Request. Each cached block must therefore
// be at least unsafe.Sizeof(bcNode{}) bytes and aligned for it.
type bcNode struct {
	next *bcNode
	size uintptr
}

var bcHeaderSize = unsafe.Sizeof(bcNode{})

// BlockCache is an intrusive LIFO stack of Blocks threaded through their
// own memory, mirroring bit-memory's memory_block_cache. Blocks pushed
// onto a BlockCache need not all be the same size, but each must be at
// least BlockCacheMinSize bytes and aligned for a pointer.
type BlockCache struct {
	head *bcNode
}

// BlockCacheMinSize is the minimum size a Block must have to be stored in
// a BlockCache.
var BlockCacheMinSize = bcHeaderSize

// Empty reports whether the cache holds no blocks.
func (c *BlockCache) Empty() bool { return c.head == nil }

// Size reports the number of blocks in the cache. This is O(n), matching
// the lazily-computed size() the original documents.
func (c *BlockCache) Size() int {
	n := 0
	for p := c.head; p != nil; p = p.next {
		n++
	}
	return n
}

// SizeBytes reports the sum, in bytes, of every block's size.
func (c *BlockCache) SizeBytes() uintptr {
	var total uintptr
	for p := c.head; p != nil; p = p.next {
		total += p.size
	}
	return total
}

// Contains reports whether ptr falls within any block currently cached.
func (c *BlockCache) Contains(ptr unsafe.Pointer) bool {
	addr := uintptr(ptr)
	for p := c.head; p != nil; p = p.next {
		start := uintptr(unsafe.Pointer(p))
		if addr >= start && addr < start+p.size {
			return true
		}
	}
	return false
}

// Peek views the front block without removing it. It is undefined
// behavior to call Peek on an empty cache.
func (c *BlockCache) Peek() Block {
	return Block{Ptr: unsafe.Pointer(c.head), Size: c.head.size}
}

// Request pops and returns the front block, or the null block if the
// cache is empty.
func (c *BlockCache) Request() Block {
	if c.head == nil {
		return NullBlock
	}
	n := c.head
	c.head = n.next
	return Block{Ptr: unsafe.Pointer(n), Size: n.size}
}

// Store pushes block onto the cache. block.Size must be at least
// BlockCacheMinSize and block.Ptr must be aligned for a pointer;
// violating either is undefined behavior.
func (c *BlockCache) Store(block Block) {
	n := (*bcNode)(block.Ptr)
	n.size = block.Size
	n.next = c.head
	c.head = n
}

// Steal moves every block from other into c, leaving other empty.
func (c *BlockCache) Steal(other *BlockCache) {
	if other.head == nil {
		return
	}
	tail := other.head
	for tail.next != nil {
		tail = tail.next
	}
	tail.next = c.head
	c.head = other.head
	other.head = nil
}

// Swap exchanges the contents of c and other.
func (c *BlockCache) Swap(other *BlockCache) {
	c.head, other.head = other.head, c.head
}

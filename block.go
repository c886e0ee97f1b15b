package allox

import "unsafe"

// Block is a contiguous region of memory handed out by a BlockAllocator.
//
// The zero Block is the null block: Ptr == nil && Size == 0. Any other
// combination of a nil Ptr with nonzero Size, or vice versa, is invalid.
type Block struct {
	Ptr  unsafe.Pointer
	Size uintptr
}

// NullBlock is the sentinel returned by block allocators that cannot
// currently satisfy a request.
var NullBlock = Block{}

// IsNull reports whether b is the null block.
func (b Block) IsNull() bool { return b.Ptr == nil }

// End returns the address one past the last byte of b.
func (b Block) End() unsafe.Pointer {
	return unsafe.Pointer(uintptr(b.Ptr) + b.Size)
}

// Contains reports whether p falls within [b.Ptr, b.Ptr+b.Size).
func (b Block) Contains(p unsafe.Pointer) bool {
	if b.IsNull() {
		return false
	}
	addr := uintptr(p)
	start := uintptr(b.Ptr)
	return addr >= start && addr < start+b.Size
}

// Bytes views b as a byte slice. It returns nil if b is the null block.
func (b Block) Bytes() []byte {
	if b.IsNull() {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), b.Size)
}

// Equal reports structural equality: the same base address and size.
func (b Block) Equal(other Block) bool {
	return b.Ptr == other.Ptr && b.Size == other.Size
}

// BlockFromBytes wraps a byte slice as a Block. The caller retains
// responsibility for the slice's lifetime; this is a view, not a copy.
func BlockFromBytes(b []byte) Block {
	if len(b) == 0 {
		return NullBlock
	}
	return Block{Ptr: unsafe.Pointer(&b[0]), Size: uintptr(len(b))}
}

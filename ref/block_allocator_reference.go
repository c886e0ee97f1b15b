package ref

import (
	"reflect"

	"github.com/go-allox/allox"
)

// blockAllocatorVtable is BlockAllocatorReference's equivalent of
// anyAllocatorVtable: allocate_block, deallocate_block, next_block_size,
// info.
type blockAllocatorVtable struct {
	allocateBlock   func(data any) allox.Block
	deallocateBlock func(data any, b allox.Block)
	nextBlockSize   func(data any) uintptr
	info            func(data any) allox.Info
}

func blockVtableFor[B allox.BlockAllocator]() *blockAllocatorVtable {
	return &blockAllocatorVtable{
		allocateBlock: func(data any) allox.Block {
			return data.(B).AllocateBlock()
		},
		deallocateBlock: func(data any, b allox.Block) {
			data.(B).DeallocateBlock(b)
		},
		nextBlockSize: func(data any) uintptr {
			return allox.NextBlockSize(data.(B))
		},
		info: func(data any) allox.Info {
			return allox.BlockAllocInfo(data.(B))
		},
	}
}

// BlockAllocatorReference is a type-erased allox.BlockAllocator.
// Equality for most instances is address-based through the wrapped
// allocator, except references built by
// MakeStatelessBlockAllocatorReference, whose equality is independent of
// address since every instance of a stateless allocator is
// interchangeable.
type BlockAllocatorReference struct {
	data      any
	vtable    *blockAllocatorVtable
	stateless bool
	typeName  string
}

// NewBlockAllocatorReference type-erases b.
func NewBlockAllocatorReference[B allox.BlockAllocator](b B) BlockAllocatorReference {
	return BlockAllocatorReference{data: b, vtable: blockVtableFor[B]()}
}

// MakeStatelessBlockAllocatorReference synthesizes a reference over B's
// zero value, built once here: correct only when B is allox.Stateless,
// since every instance is then interchangeable. It panics otherwise.
func MakeStatelessBlockAllocatorReference[B allox.BlockAllocator]() BlockAllocatorReference {
	var b B
	if s, ok := any(b).(allox.Stateless); !ok || !s.IsStateless() {
		panic("ref: MakeStatelessBlockAllocatorReference requires a Stateless block allocator")
	}
	typeName := typeNameOf(b)
	return BlockAllocatorReference{data: b, vtable: blockVtableFor[B](), stateless: true, typeName: typeName}
}

// AllocateBlock forwards to the erased block allocator.
func (r BlockAllocatorReference) AllocateBlock() allox.Block {
	return r.vtable.allocateBlock(r.data)
}

// DeallocateBlock forwards to the erased block allocator.
func (r BlockAllocatorReference) DeallocateBlock(b allox.Block) {
	r.vtable.deallocateBlock(r.data, b)
}

// NextBlockSize forwards to the erased block allocator.
func (r BlockAllocatorReference) NextBlockSize() uintptr {
	return r.vtable.nextBlockSize(r.data)
}

// Info forwards to the erased block allocator's diagnostic Info.
func (r BlockAllocatorReference) Info() allox.Info {
	return r.vtable.info(r.data)
}

// Equal reports whether r and other reference the same underlying
// allocator -- or, when both are stateless references, whether they
// were synthesized for the same underlying type.
func (r BlockAllocatorReference) Equal(other BlockAllocatorReference) bool {
	if r.stateless || other.stateless {
		return r.stateless == other.stateless && r.typeName == other.typeName
	}
	return r.Info().Equal(other.Info())
}

func typeNameOf(b any) string {
	return reflect.TypeOf(b).String()
}

var (
	_ allox.BlockAllocator   = BlockAllocatorReference{}
	_ allox.NextSizer        = BlockAllocatorReference{}
	_ allox.BlockInformative = BlockAllocatorReference{}
)

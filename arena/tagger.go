package arena

import (
	"unsafe"

	"github.com/go-allox/allox"
)

// ZeroTagger fills both the allocation and deallocation regions with
// 0x00. Cheap, but indistinguishable from an all-zero use-after-free.
type ZeroTagger struct{}

func (ZeroTagger) TagAllocation(p unsafe.Pointer, size uintptr)   { fill(p, size, 0x00) }
func (ZeroTagger) TagDeallocation(p unsafe.Pointer, size uintptr) { fill(p, size, 0x00) }

// PatternTagger fills freshly allocated memory with 0xFD and freed
// memory with 0xFE, the classic debug-heap convention: a stomp on freed
// memory or a read of uninitialized memory both show up as a
// recognizable byte in a debugger.
type PatternTagger struct{}

const (
	allocFillByte   byte = 0xFD
	deallocFillByte byte = 0xFE
)

func (PatternTagger) TagAllocation(p unsafe.Pointer, size uintptr)   { fill(p, size, allocFillByte) }
func (PatternTagger) TagDeallocation(p unsafe.Pointer, size uintptr) { fill(p, size, deallocFillByte) }

func fill(p unsafe.Pointer, size uintptr, b byte) {
	if p == nil || size == 0 {
		return
	}
	s := unsafe.Slice((*byte)(p), size)
	for i := range s {
		s[i] = b
	}
}

var (
	_ allox.Tagger = ZeroTagger{}
	_ allox.Tagger = PatternTagger{}
)

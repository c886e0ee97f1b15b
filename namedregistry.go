package allox

import (
	"sync"
	"unsafe"

	"github.com/dolthub/maphash"
)

var (
	namedHasher   = maphash.NewHasher[string]()
	namedRegistry sync.Map // uint64 -> Info
)

// RegisterName returns a stable Info for name: the first caller to
// register a given name wins, and every later registration under that
// same name gets back the winner's Info instead of its own addr, so
// diagnostics for a set of allocator instances sharing one name agree
// with each other. Backs the named_allocator / named_block_allocator
// decorators' Info().
func RegisterName(name string, addr unsafe.Pointer) Info {
	key := namedHasher.Hash(name)
	info := Info{Name: name, Address: addr}
	actual, _ := namedRegistry.LoadOrStore(key, info)
	return actual.(Info)
}

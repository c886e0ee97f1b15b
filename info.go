package allox

import (
	"fmt"
	"unsafe"
)

// Info is a diagnostic value identifying one allocator instance: a
// human-readable name and the address of the instance itself. Two Infos
// are equal iff both fields match.
type Info struct {
	Name    string
	Address unsafe.Pointer
}

// String renders Info the way the teacher's trace diagnostics render a
// pointer: name followed by the hex address.
func (i Info) String() string {
	return fmt.Sprintf("%s@%p", i.Name, i.Address)
}

// Equal reports whether i and other identify the same allocator instance.
func (i Info) Equal(other Info) bool {
	return i.Name == other.Name && i.Address == other.Address
}

// DefaultInfo builds the default Info for an allocator that does not
// supply its own Info() method: "Unnamed" plus its own address, per the
// allocator_traits default in spec.md §4.1. Callers pass the address of
// the concrete allocator value.
func DefaultInfo(addr unsafe.Pointer) Info {
	return Info{Name: "Unnamed", Address: addr}
}

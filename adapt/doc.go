// Package adapt bridges allox allocators to the shapes other Go code
// expects: deleters for manual lifetime management (spec.md §4.8), and
// StandardAllocator exposing an allocate/deallocate/max-size surface
// similar to a generic container's allocator parameter.
package adapt

// Package ref provides type-erased references over allox.Allocator and
// allox.BlockAllocator, per spec.md §4.7: a (data pointer, vtable
// pointer) pair built from any concrete allocator type, dropping static
// optional capabilities (Stateless, OwnershipAware, ...) in exchange for
// a single concrete type usable across package boundaries.
package ref

// Package storage implements spec.md §4.6's three storage policies --
// referenced, shared, stateless -- for both allox.Allocator and
// allox.BlockAllocator, as thin generic wrappers deciding how a holder
// such as the adapt package's deleters and StandardAllocator owns (or
// doesn't own) its wrapped allocator.
package storage

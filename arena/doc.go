// Package arena composes a byte-granular allox.Allocator with the
// cross-cutting policies spec.md §4.5 names: guard-based bounds
// checking, fill-byte tagging, allocation tracking, and mutual
// exclusion. It also supplies concrete policies for each slot (a
// zero/pattern tagger, a counting tracker, a guard bounds checker) so
// an Arena can be built from any combination without writing new
// policy types.
package arena

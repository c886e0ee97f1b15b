package arena

import (
	"encoding/binary"
	"unsafe"

	"github.com/go-allox/allox"
)

// guardWord is repeated to fill each 8-byte guard region.
const guardWord uint32 = 0xDEADBEEF

// guardSize is the width of a single guard, front or back.
const guardSize = 8

// GuardBoundsChecker places an 8-byte 0xDEADBEEF guard immediately
// before and after the user region. Overhead is 16: 8 bytes donated to
// the front guard, 8 to the back.
type GuardBoundsChecker struct{}

func (GuardBoundsChecker) Overhead() uintptr { return 2 * guardSize }

func (GuardBoundsChecker) PlaceGuards(raw unsafe.Pointer, size uintptr) {
	writeGuard(raw)
	writeGuard(unsafe.Pointer(uintptr(raw) + guardSize + size))
}

func (GuardBoundsChecker) CheckGuards(raw unsafe.Pointer, size uintptr) bool {
	return readGuard(raw) && readGuard(unsafe.Pointer(uintptr(raw)+guardSize+size))
}

func writeGuard(p unsafe.Pointer) {
	s := unsafe.Slice((*byte)(p), guardSize)
	binary.LittleEndian.PutUint32(s[0:4], guardWord)
	binary.LittleEndian.PutUint32(s[4:8], guardWord)
}

func readGuard(p unsafe.Pointer) bool {
	s := unsafe.Slice((*byte)(p), guardSize)
	return binary.LittleEndian.Uint32(s[0:4]) == guardWord && binary.LittleEndian.Uint32(s[4:8]) == guardWord
}

var _ allox.BoundsChecker = GuardBoundsChecker{}

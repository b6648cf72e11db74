//go:build unix

package engine

import (
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// touchPages forces a zero write to every page backing slots, pinning the
// resident set at construction time instead of letting the first access to
// each page fault it in mid-search (spec: "touch each page during
// initialization to pin the resident set").
func touchPages(slots []atomic.Uint32) {
	pageSize := unix.Getpagesize()
	if pageSize <= 0 {
		pageSize = 4096
	}
	stride := pageSize / 4 // 4 bytes per atomic.Uint32 slot
	if stride == 0 {
		stride = 1
	}
	for i := 0; i < len(slots); i += stride {
		slots[i].Store(slots[i].Load())
	}
}

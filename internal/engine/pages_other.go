//go:build !unix

package engine

import "sync/atomic"

// touchPages is a no-op on non-unix targets; golang.org/x/sys/unix has no
// Getpagesize there, and the eager-residency optimization is immaterial to
// correctness, only to avoiding page faults during the first search pass.
func touchPages(slots []atomic.Uint32) {}

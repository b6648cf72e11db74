package engine

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool is the bounded worker admission control described in §5: a fixed
// number of concurrent search tasks, any excess blocking until a slot
// frees up. golang.org/x/sync's weighted semaphore plays the role spec.md
// describes as "a single integer free_worker_count [and] a condvar" —
// Acquire blocks exactly the way a condvar wait on free_worker_count > 0
// would, without a hand-rolled monitor.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool builds a pool admitting at most size concurrent tasks.
func NewPool(size int64) *Pool {
	return &Pool{sem: semaphore.NewWeighted(size)}
}

// Acquire blocks until a worker slot is free.
func (p *Pool) Acquire() {
	// The pool has no notion of caller cancellation of its own — the
	// search's cancelToken is the cancellation mechanism, checked inside
	// the task body, not at admission time — so a background context is
	// correct here.
	_ = p.sem.Acquire(context.Background(), 1)
}

// Release frees a worker slot.
func (p *Pool) Release() {
	p.sem.Release(1)
}

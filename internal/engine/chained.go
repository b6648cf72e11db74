package engine

import (
	"sync/atomic"

	"pawnsolver/internal/storage"
)

// ChainedTable pairs a small, fast in-memory front Table with a much
// larger disk-resident backing store. On Add, an entry the front table
// spills (because a different code already held that slot) is demoted to
// the backing store rather than dropped. Probe checks the front first and,
// on a miss, asks the backing store and promotes a hit back to the front.
type ChainedTable struct {
	front   *Table
	backing *storage.BackingStore

	// Probe/Add run from many concurrently-executing searchChild
	// goroutines under parallel fan-out (see search.go's
	// parallelRemaining), so these counters need their own atomicity —
	// §5's "relaxed atomics... per-slot atomicity is sufficient" covers
	// the table's slots, not this side-channel bookkeeping.
	hits, misses, promotions, demotions atomic.Uint64
}

// NewChainedTable builds a chained table over an existing front table and
// backing store. Both must already be constructed; ChainedTable only
// coordinates between them.
func NewChainedTable(front *Table, backing *storage.BackingStore) *ChainedTable {
	return &ChainedTable{front: front, backing: backing}
}

// Probe checks the front table, then the backing store, promoting a
// backing-store hit back into the front.
func (c *ChainedTable) Probe(code uint64) ResultKind {
	if kind := c.front.Probe(code); kind != None {
		c.hits.Add(1)
		return kind
	}
	byteKind, found, err := c.backing.Get(code)
	if err != nil || !found {
		c.misses.Add(1)
		return None
	}
	kind := ResultKind(byteKind)
	c.promotions.Add(1)
	c.front.Add(code, kind)
	return kind
}

// Add deposits kind for code in the front table. A displaced entry is
// demoted to the backing store instead of being lost, which is the
// defining behavior of the chained variant versus a plain Table.
func (c *ChainedTable) Add(code uint64, kind ResultKind) {
	spilled, ok := c.front.AddWithSpill(code, kind)
	if !ok {
		return
	}
	c.demotions.Add(1)
	// A demotion failure is not fatal to correctness: the demoted entry
	// is simply lost, same as the plain table's single-probe policy, so
	// errors here are swallowed rather than propagated into the search.
	_ = c.backing.Put(spilled.code, byte(spilled.kind))
}

// Stats reports cumulative front-hit, backing-promotion, miss, and
// demotion counts, for telemetry.
func (c *ChainedTable) Stats() (hits, promotions, misses, demotions uint64) {
	return c.hits.Load(), c.promotions.Load(), c.misses.Load(), c.demotions.Load()
}

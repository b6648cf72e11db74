package engine

import (
	"sync"
	"sync/atomic"

	"pawnsolver/internal/board"
	"pawnsolver/internal/codec"
	"pawnsolver/internal/config"
)

// table is the subset of *Table / *ChainedTable the search needs. Engine is
// written against this interface so a root driver can swap in either
// variant without the search caring which.
type table interface {
	Probe(code uint64) ResultKind
	Add(code uint64, kind ResultKind)
}

// cancelToken is the "explicit context object... per-node cancellation
// token" the design notes prefer over a single global abort flag. One is
// created fresh each time a node successfully claims the parallel region
// (see canParallelize); every descendant call within that region's subtree
// carries the same token, so a cutoff anywhere in the fan-out is visible to
// every sibling and is scoped to that region alone. A nil token never
// reports aborted — the overwhelmingly common case of a node outside any
// active parallel region.
type cancelToken struct {
	aborted atomic.Bool
}

func (c *cancelToken) Aborted() bool {
	return c != nil && c.aborted.Load()
}

func (c *cancelToken) Abort() {
	if c != nil {
		c.aborted.Store(true)
	}
}

// Engine runs negamax with alpha-beta over a Position/Move collaborator,
// consulting and populating a transposition table, with a bounded worker
// pool fanning out the eligible interior nodes.
type Engine struct {
	codec *codec.Codec
	tt    table
	pool  *Pool

	// parallelClaimed implements "global threads_running": only the first
	// node in the tree whose depth/window make it eligible gets to fan
	// out; nested recursion beneath it runs serially and shares that
	// node's cancelToken.
	parallelClaimed atomic.Bool

	nodesVisited atomic.Uint64

	// rootBest is the root's running best value, updated as the root's
	// children are evaluated; -2 means the root hasn't resolved any child
	// yet. Telemetry reads it for the progress line's result column.
	rootBest atomic.Int32

	// pathMu/path track the search's live recursion stack for telemetry's
	// depth_move_stack / principal_variation columns. Under parallel
	// fan-out several goroutines push onto the same stack concurrently;
	// the snapshot telemetry reads is then only an approximation of one
	// branch, which is acceptable since this is a display aid, not used
	// for correctness.
	pathMu sync.Mutex
	path   []pathEntry
}

// pathEntry is one level of the live search stack: the move taken and the
// already-canonical code of the position it led to.
type pathEntry struct {
	move board.Move
	code uint64
}

// NewEngine builds a search engine over codec c, transposition table tt,
// and worker pool pool.
func NewEngine(c *codec.Codec, tt table, pool *Pool) *Engine {
	e := &Engine{codec: c, tt: tt, pool: pool}
	e.rootBest.Store(-2)
	return e
}

// NodesVisited returns the cumulative count of negamax entries since the
// engine was constructed, for telemetry.
func (e *Engine) NodesVisited() uint64 { return e.nodesVisited.Load() }

// RootBest returns the root's best value found so far, or (0, false)
// before the first child has resolved.
func (e *Engine) RootBest() (int, bool) {
	v := e.rootBest.Load()
	if v == -2 {
		return 0, false
	}
	return int(v), true
}

// PathSnapshot returns a copy of the search's current live recursion
// stack, root first, for telemetry rendering.
func (e *Engine) PathSnapshot() []pathEntry {
	e.pathMu.Lock()
	defer e.pathMu.Unlock()
	return append([]pathEntry(nil), e.path...)
}

func (e *Engine) pushPath(entry pathEntry) {
	e.pathMu.Lock()
	e.path = append(e.path, entry)
	e.pathMu.Unlock()
}

func (e *Engine) popPath() {
	e.pathMu.Lock()
	e.path = e.path[:len(e.path)-1]
	e.pathMu.Unlock()
}

// reportRootBest records a new root-level best for telemetry. depth ==
// ParallelMinDepth is never 1 when this matters: the root (depth 1) never
// qualifies to parallelize (ParallelMinDepth is at least 2), so every
// root-level best update reaches here through the plain serial loops.
func (e *Engine) reportRootBest(depth, best int) {
	if depth == 1 {
		e.rootBest.Store(int32(best))
	}
}

// Search computes the game-theoretic value of pos for the side to move,
// under the full window. A root-level abort is undefined behavior per §5;
// panicking makes that contract explicit rather than silently returning a
// meaningless value.
func (e *Engine) Search(pos *board.Position) int {
	v, aborted := e.negamax(pos, 0, 1, -1, 1, nil)
	if aborted {
		panic("engine: root-level abort is undefined behavior")
	}
	return v
}

// negamax implements §4.5. code is the already-canonical position code for
// pos, computed by the caller before recursing (the root passes an unused
// 0, since depth 1's write-back is suppressed and the root is never
// probed — there is nothing to share it with).
func (e *Engine) negamax(pos *board.Position, code uint64, depth int, alpha, beta int, cancel *cancelToken) (value int, aborted bool) {
	if cancel.Aborted() {
		return 0, true
	}
	e.nodesVisited.Add(1)

	if v, ok := pos.Winner(); ok {
		return v * int(pos.SideToMove()), false
	}

	moves := pos.GenerateMoves()
	if pos.IsHorizontallySymmetric() {
		moves = pos.PruneRightHalfOrigins(moves)
	}
	if len(moves) == 0 {
		// Stalemate: no promoted pawn, no legal move. Resolved as a draw,
		// matching winner()'s convention — see DESIGN.md.
		return 0, false
	}

	alphaOrig := alpha
	best := -2 // below any real value; every branch below overwrites it
	i := 0
	for ; i < len(moves) && i < config.SerialPrelude; i++ {
		v, ab := e.searchChild(pos, moves[i], depth, alpha, beta, cancel)
		if ab {
			return 0, true
		}
		if v > best {
			best = v
			e.reportRootBest(depth, best)
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			i++ // the cutoff covers this child; don't reconsider it below
			break
		}
	}

	if alpha < beta && i < len(moves) {
		if e.canParallelize(depth, alphaOrig, beta) {
			v, ab := e.parallelRemaining(pos, moves[i:], depth, alpha, beta)
			if ab {
				return 0, true
			}
			if v > best {
				best = v
				e.reportRootBest(depth, best)
			}
		} else {
			for ; i < len(moves); i++ {
				v, ab := e.searchChild(pos, moves[i], depth, alpha, beta, cancel)
				if ab {
					return 0, true
				}
				if v > best {
					best = v
					e.reportRootBest(depth, best)
				}
				if best > alpha {
					alpha = best
				}
				if alpha >= beta {
					break
				}
			}
		}
	}

	if depth > 1 {
		e.tt.Add(code, writeBackKind(best, alphaOrig, beta))
	}
	return best, false
}

// searchChild applies m to a clone of parent, canonicalizes it, and either
// resolves its value from a transposition probe or recurses. The returned
// value is already negated into parent's perspective.
func (e *Engine) searchChild(parent *board.Position, m board.Move, parentDepth int, alpha, beta int, cancel *cancelToken) (int, bool) {
	child := parent.Clone()
	child.Apply(m)
	child.Canonicalize()
	code := child.Encode(e.codec)
	kind := e.tt.Probe(code)

	lo, hi := possibleRange(kind)
	if lo == hi {
		return -lo, false
	}
	// The least this child is guaranteed to contribute to parent, even
	// before recursing: if that alone already forces a beta cutoff, the
	// exact value is irrelevant and recursion can be skipped.
	parentLo := -hi
	if parentLo >= beta {
		return parentLo, false
	}

	e.pushPath(pathEntry{move: m, code: code})
	v, ab := e.negamax(child, code, parentDepth+1, -beta, -alpha, cancel)
	e.popPath()
	if ab {
		return 0, true
	}
	return -v, false
}

// possibleRange narrows the set of values a stored ResultKind admits for
// the position it was recorded against. A degenerate lo == hi means the
// kind is exact.
func possibleRange(kind ResultKind) (lo, hi int) {
	switch kind {
	case CurrentLoss:
		return -1, -1
	case Draw:
		return 0, 0
	case CurrentWin:
		return 1, 1
	case LowerBound0:
		return 0, 1
	case UpperBound0:
		return -1, 0
	default: // None
		return -1, 1
	}
}

// writeBackKind implements the §4.5 write-back table.
func writeBackKind(best, alphaOrig, beta int) ResultKind {
	switch {
	case best == -1:
		if alphaOrig == -1 {
			return CurrentLoss
		}
		return UpperBound0
	case best == 1:
		if beta == 1 {
			return CurrentWin
		}
		return LowerBound0
	default: // best == 0
		if alphaOrig == -1 && beta == 1 {
			return Draw
		}
		if beta == 0 {
			return LowerBound0
		}
		return UpperBound0
	}
}

// canParallelize checks §4.5's parallelism eligibility rules and, if they
// hold, atomically claims the single global parallel slot in the same step
// so a racing sibling can't also decide it's eligible.
func (e *Engine) canParallelize(depth, alphaOrig, beta int) bool {
	if depth < config.ParallelMinDepth || depth > config.ParallelDepth {
		return false
	}
	fullWindow := alphaOrig == -1 && beta == 1
	if fullWindow && depth < config.CutMinDepth {
		return false
	}
	return e.parallelClaimed.CompareAndSwap(false, true)
}

// parallelRemaining fans moves out across the worker pool, one task per
// move, each searching a cloned position under the inherited (alpha, beta)
// window. A task whose value would cause a cutoff raises a cancelToken
// shared by the whole region; siblings still in flight notice it at their
// next negamax entry and abandon their subtree.
func (e *Engine) parallelRemaining(pos *board.Position, moves []board.Move, depth, alpha, beta int) (value int, aborted bool) {
	defer e.parallelClaimed.Store(false)

	cancel := &cancelToken{}
	var mu sync.Mutex
	var wg sync.WaitGroup
	best := -2

	for _, m := range moves {
		m := m
		e.pool.Acquire()
		wg.Add(1)
		go func() {
			defer e.pool.Release()
			defer wg.Done()
			v, ab := e.searchChild(pos, m, depth, alpha, beta, cancel)
			if ab {
				return
			}
			mu.Lock()
			if v > best {
				best = v
			}
			if best >= beta {
				cancel.Abort()
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	return best, false
}

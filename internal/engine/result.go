package engine

import "fmt"

// ResultKind is the 3-bit tagged result an entry records: either an exact
// game-theoretic value for the side to move, or a one-sided bound on it.
type ResultKind uint8

const (
	// None marks an empty slot.
	None ResultKind = iota
	// CurrentLoss is an exact value of -1 for the side to move.
	CurrentLoss
	// Draw is an exact value of 0.
	Draw
	// CurrentWin is an exact value of +1 for the side to move.
	CurrentWin
	// LowerBound0 means the true value is >= 0 but is not known exactly.
	LowerBound0
	// UpperBound0 means the true value is <= 0 but is not known exactly.
	UpperBound0
)

// numResultKinds is the count of defined kinds; the packed transposition
// entry reserves 3 bits (8 values) for this field, more than enough.
const numResultKinds = 6

func (k ResultKind) String() string {
	switch k {
	case None:
		return "NONE"
	case CurrentLoss:
		return "CURRENT_LOSS"
	case Draw:
		return "DRAW"
	case CurrentWin:
		return "CURRENT_WIN"
	case LowerBound0:
		return "LOWER_BOUND_0"
	case UpperBound0:
		return "UPPER_BOUND_0"
	default:
		return fmt.Sprintf("ResultKind(%d)", uint8(k))
	}
}

// IsExact reports whether k is one of the three exact values.
func (k ResultKind) IsExact() bool {
	return k == CurrentLoss || k == Draw || k == CurrentWin
}

// Value returns the exact integer value {-1, 0, +1} for an exact kind. It
// panics for non-exact kinds; callers must check IsExact first.
func (k ResultKind) Value() int {
	switch k {
	case CurrentLoss:
		return -1
	case Draw:
		return 0
	case CurrentWin:
		return 1
	default:
		panic("engine: Value called on a non-exact ResultKind")
	}
}

// Flip swaps a result to the opposing side's point of view: an exact win
// becomes a loss and vice versa, a lower bound becomes an upper bound and
// vice versa, and draw/none are their own flips.
func Flip(k ResultKind) ResultKind {
	switch k {
	case CurrentWin:
		return CurrentLoss
	case CurrentLoss:
		return CurrentWin
	case LowerBound0:
		return UpperBound0
	case UpperBound0:
		return LowerBound0
	case Draw, None:
		return k
	default:
		panic("engine: Flip called on an invalid ResultKind")
	}
}

// Merge combines a prior stored result with a new deposit for the same
// position code, producing the tightest result consistent with both. It
// panics on a genuine contradiction (an exact value and a bound that
// excludes it) — per the error-handling design, that is a programmer error
// in the search, not a recoverable condition.
func Merge(a, b ResultKind) ResultKind {
	if a == b {
		return a
	}
	if a == None {
		return b
	}
	if b == None {
		return a
	}
	// Normalize so the exact-vs-bound and bound-vs-bound cases are each
	// checked once regardless of argument order.
	if a.IsExact() && !b.IsExact() {
		return mergeExactBound(a, b)
	}
	if b.IsExact() && !a.IsExact() {
		return mergeExactBound(b, a)
	}
	if a.IsExact() && b.IsExact() {
		panic(fmt.Sprintf("engine: contradictory exact results %v and %v for the same code", a, b))
	}
	// Both bounds, distinct: LowerBound0 + UpperBound0 pinch to Draw; the
	// only other distinct-bound pairing is impossible since there are only
	// two bound kinds.
	return Draw
}

// mergeExactBound merges an exact value e with a bound that must be
// consistent with it (or this is a contradiction).
func mergeExactBound(e, bound ResultKind) ResultKind {
	v := e.Value()
	switch bound {
	case LowerBound0:
		if v < 0 {
			panic(fmt.Sprintf("engine: exact value %v contradicts LOWER_BOUND_0", e))
		}
	case UpperBound0:
		if v > 0 {
			panic(fmt.Sprintf("engine: exact value %v contradicts UPPER_BOUND_0", e))
		}
	default:
		panic("engine: mergeExactBound called with a non-bound kind")
	}
	return e
}

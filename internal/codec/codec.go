// Package codec implements the bijective mapping between a pawns-only
// position (white pawn set, black pawn set, side to move, en-passant file)
// and a dense nonnegative integer, stratified by piece count so the whole
// reachable space packs into a flat array with no wasted strata.
package codec

import (
	"sort"

	"pawnsolver/internal/combinatorics"
)

// Codec holds the precomputed stratum-base table for one board size. It is
// built once at startup and never mutated afterward; every Encode/Decode
// call is a pure function of the table and its arguments.
type Codec struct {
	n    int // board dimension
	s    int // interior squares, n*(n-2)
	maxP int // max pawns per side, n

	// base[nw][nb] is the running sum of C(s,nw')*C(s,nb')*2*(n+1) over all
	// (nw', nb') lexicographically earlier than (nw, nb).
	base [][]uint64

	// flatBase is base flattened in the same lexicographic (nw major, nb
	// minor) order, monotone nondecreasing, used to locate a code's
	// stratum by upper_bound during Decode.
	flatBase []uint64
}

// New builds a Codec for an n x n board. n must be >= 4. combinatorics.Init
// must already have been called (New calls it defensively so callers that
// forget still get a correct, if redundantly-initialized, codec).
func New(n int) *Codec {
	if n < 4 {
		panic("codec: board dimension must be >= 4")
	}
	combinatorics.Init()

	s := n * (n - 2)
	maxP := n
	base := make([][]uint64, maxP+1)
	flat := make([]uint64, 0, (maxP+1)*(maxP+1))
	var running uint64
	for nw := 0; nw <= maxP; nw++ {
		base[nw] = make([]uint64, maxP+1)
		for nb := 0; nb <= maxP; nb++ {
			base[nw][nb] = running
			flat = append(flat, running)
			stratum := combinatorics.Binom(s, nw) * combinatorics.Binom(s, nb) * 2 * uint64(n+1)
			running += stratum
		}
	}

	return &Codec{n: n, s: s, maxP: maxP, base: base, flatBase: flat}
}

// Size returns the number of interior squares S = n*(n-2).
func (c *Codec) Size() int { return c.s }

// CodeSpace returns one past the largest code this codec can produce; every
// Encode result satisfies 0 <= code < CodeSpace().
func (c *Codec) CodeSpace() uint64 {
	return c.base[c.maxP][c.maxP] + combinatorics.Binom(c.s, c.maxP)*combinatorics.Binom(c.s, c.maxP)*2*uint64(c.n+1)
}

// Encode maps a position to its code. white and black are ascending,
// disjoint slices of interior-square indices in [0, S); sideBlack is true
// when black is to move; epFile is -1 for "no en-passant square" or a file
// index in [0, n).
func (c *Codec) Encode(white, black []int, sideBlack bool, epFile int) uint64 {
	nw, nb := len(white), len(black)
	if nw > c.maxP || nb > c.maxP {
		panic("codec: too many pawns for board size")
	}
	if epFile < -1 || epFile >= c.n {
		panic("codec: en-passant file out of range")
	}

	whiteRank := combinatorics.RankCombination(white)
	blackRank := combinatorics.RankCombination(black)

	var sideBit uint64
	if sideBlack {
		sideBit = 1
	}

	nbCount := combinatorics.Binom(c.s, nb)
	offset := ((whiteRank*nbCount + blackRank)*2 + sideBit) * uint64(c.n+1)
	offset += uint64(epFile + 1)

	return c.base[nw][nb] + offset
}

// Decode inverts Encode, reconstructing the white/black pawn sets (as
// ascending square-index slices), the side to move, and the en-passant
// file from a code previously produced by Encode on the same Codec.
func (c *Codec) Decode(code uint64) (white, black []int, sideBlack bool, epFile int) {
	nw, nb, offset := c.locateStratum(code)

	epPlusOne := offset % uint64(c.n+1)
	offset /= uint64(c.n+1)
	epFile = int(epPlusOne) - 1

	sideBit := offset % 2
	offset /= 2
	sideBlack = sideBit == 1

	nbCount := combinatorics.Binom(c.s, nb)
	blackRank := offset % nbCount
	whiteRank := offset / nbCount

	white = combinatorics.UnrankCombination(whiteRank, nw)
	black = combinatorics.UnrankCombination(blackRank, nb)
	return white, black, sideBlack, epFile
}

// locateStratum finds the (nw, nb) whose base is the greatest base <= code,
// and returns the residual offset within that stratum, i.e.
// upper_bound(base, code) - 1.
func (c *Codec) locateStratum(code uint64) (nw, nb int, offset uint64) {
	idx := sort.Search(len(c.flatBase), func(i int) bool {
		return c.flatBase[i] > code
	}) - 1
	if idx < 0 {
		panic("codec: code below the first stratum's base")
	}
	nw, nb = idx/(c.maxP+1), idx%(c.maxP+1)
	return nw, nb, code - c.flatBase[idx]
}

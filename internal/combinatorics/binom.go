// Package combinatorics provides the binomial coefficient table and the
// k-combination rank/unrank bijection the position codec is built on.
package combinatorics

import "sync"

// MaxN bounds the universe size the precomputed table supports. An 8x8
// board has S = 8*(8-2) = 48 interior squares, so 64 leaves headroom for
// larger boards without growing the table.
const MaxN = 64

var (
	once      sync.Once
	binomTab  [MaxN + 1][MaxN + 1]uint64
)

// Init populates the binomial coefficient table. It is idempotent and safe
// to call from multiple goroutines; only the first call does any work. The
// search must call it (directly or via codec.New) before relying on Binom,
// RankCombination, or UnrankCombination — there is no lazy per-call
// initialization, matching the "process-wide read-only table, no mutation
// after init" design.
func Init() {
	once.Do(func() {
		for n := 0; n <= MaxN; n++ {
			binomTab[n][0] = 1
			for k := 1; k <= n; k++ {
				binomTab[n][k] = binomTab[n-1][k-1] + binomTab[n-1][k]
			}
		}
	})
}

// Binom returns C(n, k), the number of k-element subsets of an n-element
// set. Returns 0 for k > n or n < 0 or k < 0, matching the convention the
// rank/unrank formulas depend on.
func Binom(n, k int) uint64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	if n > MaxN {
		panic("combinatorics: Binom called with n beyond MaxN")
	}
	return binomTab[n][k]
}

// RevBinomFloor returns the greatest c such that Binom(c, k) <= target.
// This is the "greedy floor on inverse binomial" unranking step. target
// must be below Binom(MaxN, k) (every rank the codec unranks is); for a
// larger target the search runs past the table and Binom panics.
func RevBinomFloor(target uint64, k int) int {
	if k == 0 {
		return 0
	}
	c := k - 1
	for Binom(c+1, k) <= target {
		c++
	}
	return c
}

// RankCombination computes the combinatorial rank of an ascending tuple of
// distinct nonnegative integers, i.e. Sum(C(cs[i], i+1)) for i in [0, k).
// cs must be sorted ascending; the caller (the codec) is responsible for
// that invariant since this package has no notion of a "square".
func RankCombination(cs []int) uint64 {
	var rank uint64
	for i, c := range cs {
		rank += Binom(c, i+1)
	}
	return rank
}

// UnrankCombination inverts RankCombination: given a rank in [0, C(universe,
// k)) it reconstructs the unique ascending k-tuple with that rank.
func UnrankCombination(rank uint64, k int) []int {
	cs := make([]int, k)
	n := rank
	for i := k; i >= 1; i-- {
		c := RevBinomFloor(n, i)
		cs[i-1] = c
		n -= Binom(c, i)
	}
	return cs
}

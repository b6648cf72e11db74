// Package config holds the compiled-in constants that parametrize a build
// of the solver. There is no flag parsing and no environment-variable
// overrides: the CLI surface is deliberately flagless, so retuning any of
// these values means rebuilding the binary.
package config

// BoardSize is N, the board dimension. The target configuration is 8;
// smaller boards (4 is the minimum) are used by tests for determinism.
const BoardSize = 8

// DefaultCapacity is the transposition table slot count used by the
// cmd/pawnsolver binary. It is prime, and it is the smallest prime whose
// product with 2^29 (the table's partial-key range) covers the whole 8x8
// code space (codec.New(8).CodeSpace() is about 3.89*10^18), so every
// code of a BoardSize-sized board can be stored. At 4 bytes a slot the
// table takes about 29 GB.
const DefaultCapacity = 7254963701

// PoolSize is the number of worker goroutines the bounded pool admits
// concurrently.
const PoolSize = 8

// ParallelMinDepth and ParallelDepth bound the recursion depths (measured
// from the root, root = depth 1) at which a node is allowed to fan its
// children out across the worker pool rather than searching them serially.
const (
	ParallelMinDepth = 2
	ParallelDepth    = 4
)

// CutMinDepth is the shallowest depth at which a node searched under the
// full (-1, +1) window may parallelize; above it (closer to the root) a
// full-window search stays serial and only a node whose window is already
// constrained fans out, since parallel alpha/beta cutoffs only pay off
// once the window is narrowed.
const CutMinDepth = 3

// SerialPrelude is how many of a node's ordered children are searched
// serially before any remaining children are offered to the worker pool.
// Seeding alpha this way is what lets parallel siblings cut off quickly.
const SerialPrelude = 1

// TelemetryInterval, in seconds, is the period of the progress-reporting
// ticker described in spec component G.
const TelemetryInterval = 5

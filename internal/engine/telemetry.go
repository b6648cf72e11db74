package engine

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/dustin/go-humanize"

	"pawnsolver/internal/board"
)

// filler is the fraction-of-capacity-occupied figure the progress line's
// table_fill% column reports. *Table implements it directly; ChainedTable
// delegates to its front table, since that is the table whose occupancy
// actually bears on probe latency.
type filler interface {
	FillFraction() float64
}

// FillFraction reports the front table's occupancy; the backing store's
// is unbounded and not what table_fill% is meant to convey.
func (c *ChainedTable) FillFraction() float64 {
	return c.front.FillFraction()
}

// statser is implemented by *ChainedTable; a plain *Table has no backing
// store to promote from or demote to, so it reports no stats column.
type statser interface {
	Stats() (hits, promotions, misses, demotions uint64)
}

// Reporter formats the periodic progress line described in §6: elapsed
// time, the search's live depth stack, table occupancy, an approximate
// principal variation, and the best result known so far. It is the
// component G collaborator; Engine.Search does not depend on it or call
// it — a caller wires it up with its own ticker (see cmd/pawnsolver).
type Reporter struct {
	engine *Engine
	tt     filler
	n      int
	start  time.Time

	scratch *board.Position // stateless: only its File/Rank helpers are used

	// notationCache memoizes a position code's move notation so that the
	// stable, near-root portion of the live stack — which rarely changes
	// between ticks — isn't re-formatted on every tick. It is sized small:
	// telemetry renders at most a few dozen distinct codes over a run.
	notationCache *ristretto.Cache[uint64, string]

	mu sync.Mutex // serializes writes to the shared stdout stream
}

// NewReporter builds a Reporter over an in-progress engine/table pair. n is
// the board dimension, needed to turn square indices back into files.
func NewReporter(e *Engine, tt filler, n int) (*Reporter, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, string]{
		NumCounters: 1000,
		MaxCost:     1 << 16,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: build telemetry decode cache: %w", err)
	}
	return &Reporter{
		engine:        e,
		tt:            tt,
		n:             n,
		start:         time.Now(),
		scratch:       board.New(n),
		notationCache: cache,
	}, nil
}

// Close releases the decode cache's background goroutines.
func (r *Reporter) Close() {
	r.notationCache.Close()
}

func (r *Reporter) notate(entry pathEntry) string {
	if s, ok := r.notationCache.Get(entry.code); ok {
		return s
	}
	s := moveNotation(r.scratch, entry.move)
	r.notationCache.Set(entry.code, s, 1)
	return s
}

// Line renders one progress line in the §6 format. resultColumn is left as
// "?" while the root's value is still unresolved — the spec's result enum
// only covers determined outcomes.
func (r *Reporter) Line() string {
	elapsed := time.Since(r.start).Seconds()

	path := r.engine.PathSnapshot()
	stack := make([]string, len(path))
	for i, entry := range path {
		stack[i] = r.notate(entry)
	}
	depthStack := strings.Join(stack, " ")
	if depthStack == "" {
		depthStack = "-"
	}

	fillPct := humanize.FormatFloat("#,###.##", r.tt.FillFraction()*100)

	resultColumn := "?"
	if best, ok := r.engine.RootBest(); ok {
		resultColumn = FormatResult(best, None)
	}

	statsColumn := "-"
	if s, ok := r.tt.(statser); ok {
		hits, promotions, misses, demotions := s.Stats()
		statsColumn = fmt.Sprintf("hits=%d promotions=%d misses=%d demotions=%d",
			hits, promotions, misses, demotions)
	}

	return fmt.Sprintf("[%s]\t%s\t%s%%\t%s\t%s\t%s",
		formatElapsed(elapsed), depthStack, fillPct, depthStack, resultColumn, statsColumn)
}

// WriteLine renders and writes one progress line to w, serialized against
// concurrent writers (§5: "std_out reporting is serialized by a dedicated
// mutex").
func (r *Reporter) WriteLine(w writer) {
	line := r.Line()
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(w, line)
}

// writer is the subset of io.Writer telemetry needs, kept narrow so tests
// can supply a *strings.Builder without importing io.
type writer interface {
	Write(p []byte) (int, error)
}

func formatElapsed(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 1, 64)
}

// moveNotation renders a move in a compact algebraic-like form using
// scratch only for its coordinate helpers (File/Rank are pure functions of
// the board dimension, not of scratch's occupancy).
func moveNotation(scratch *board.Position, m board.Move) string {
	fromFile, fromRank := scratch.File(m.From), scratch.Rank(m.From)
	from := fmt.Sprintf("%c%d", 'a'+fromFile, fromRank)
	if m.Promotes {
		return from + "="
	}
	toFile, toRank := scratch.File(m.To), scratch.Rank(m.To)
	to := fmt.Sprintf("%c%d", 'a'+toFile, toRank)
	sep := "-"
	if m.Captured != board.Empty || m.EnPassant {
		sep = "x"
	}
	return from + sep + to
}

// FormatResult renders a game value in the §6 CLI notation. For a draw,
// kind distinguishes a determined DRAW from a still-open LOWER_BOUND_0 /
// UPPER_BOUND_0, per "+/- on draws indicate which bound produced it".
func FormatResult(value int, kind ResultKind) string {
	switch value {
	case 1:
		return "1-0"
	case -1:
		return "0-1"
	default:
		switch kind {
		case LowerBound0:
			return "1/2-1/2+"
		case UpperBound0:
			return "1/2-1/2-"
		default:
			return "1/2-1/2"
		}
	}
}

// FormatFinalLine renders the closing "[elapsed]\tresult=v" line §6 mandates.
func FormatFinalLine(elapsed time.Duration, value int) string {
	return fmt.Sprintf("[%s]\tresult=%d", formatElapsed(elapsed.Seconds()), value)
}

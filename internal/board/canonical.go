package board

// Canonicalize rewrites p in place into the canonical representative of
// its equivalence class under (a) color swap + 180-degree rotation, so the
// side to move is always white, and (b) horizontal mirror, choosing the
// lexicographically-greater of the two mirror images (reading rank by
// rank, low rank to high, left file to right). It reports which
// transforms were applied so the search can map results back to the
// original orientation.
func (p *Position) Canonicalize() (playerFlipped, horizFlipped bool) {
	if p.black {
		p.rotate180AndSwapColors()
		playerFlipped = true
	}

	mirrored := p.horizontalMirrorCells()
	if compareCells(mirrored, p.cells) > 0 {
		p.cells = mirrored
		if p.epFile >= 0 {
			p.epFile = p.n - 1 - p.epFile
		}
		horizFlipped = true
	}
	return playerFlipped, horizFlipped
}

// rotate180AndSwapColors maps white to black and vice versa and rotates
// the board 180 degrees, turning a black-to-move position into an
// equivalent white-to-move one.
func (p *Position) rotate180AndSwapColors() {
	next := make([]Cell, p.s)
	for r := 0; r < p.n-2; r++ {
		for f := 0; f < p.n; f++ {
			from := r*p.n + f
			toR := p.n - 3 - r
			toF := p.n - 1 - f
			to := toR*p.n + toF
			c := p.cells[from]
			if c != Empty {
				c = c.Other()
			}
			next[to] = c
		}
	}
	p.cells = next
	p.black = false
	if p.epFile >= 0 {
		p.epFile = p.n - 1 - p.epFile
	}
	p.nw, p.nb = p.nb, p.nw
	if p.promoted != Empty {
		p.promoted = p.promoted.Other()
	}
}

func (p *Position) horizontalMirrorCells() []Cell {
	next := make([]Cell, p.s)
	for r := 0; r < p.n-2; r++ {
		for f := 0; f < p.n; f++ {
			next[r*p.n+(p.n-1-f)] = p.cells[r*p.n+f]
		}
	}
	return next
}

// IsHorizontallySymmetric reports whether the board is its own horizontal
// mirror image.
func (p *Position) IsHorizontallySymmetric() bool {
	return compareCells(p.cells, p.horizontalMirrorCells()) == 0
}

// compareCells returns a negative, zero, or positive value as a sorts
// before, equals, or sorts after b, comparing cell by cell in storage
// order (rank-major, file-minor).
func compareCells(a, b []Cell) int {
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}

// PruneRightHalfOrigins drops moves whose origin square lies on the right
// half of the board, the pruning rule §4.4 mandates when the position is
// horizontally symmetric (the dropped move's mirror image is already
// present among the rest). On an odd board the middle file is its own
// mirror, so its moves are kept.
func (p *Position) PruneRightHalfOrigins(moves []Move) []Move {
	out := moves[:0]
	for _, m := range moves {
		if 2*p.File(m.From) <= p.n-1 {
			out = append(out, m)
		}
	}
	return out
}

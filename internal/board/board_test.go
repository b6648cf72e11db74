package board

import (
	"testing"

	"pawnsolver/internal/codec"
)

func TestApplyUndoReversibility(t *testing.T) {
	p := InitialPosition(8)
	before := p.String()

	var applied []Move
	for ply := 0; ply < 6; ply++ {
		moves := p.GenerateMoves()
		if len(moves) == 0 {
			break
		}
		m := moves[0]
		p.Apply(m)
		applied = append(applied, m)
	}

	for i := len(applied) - 1; i >= 0; i-- {
		p.Undo(applied[i])
	}

	if p.String() != before {
		t.Fatalf("apply/undo sequence did not restore the original state\nbefore:\n%s\nafter:\n%s", before, p.String())
	}
}

func TestApplyUndoReversibilityAllMovesFromInitial(t *testing.T) {
	p := InitialPosition(6)
	before := p.String()
	for _, m := range p.GenerateMoves() {
		p.Apply(m)
		p.Undo(m)
		if p.String() != before {
			t.Fatalf("move %+v broke reversibility", m)
		}
	}
}

func TestPromotionIsTerminalAndUndoable(t *testing.T) {
	p := New(4)
	p.cells[p.index(0, 2)] = White // one step from promotion on a 4x4 board
	p.cells[p.index(3, 2)] = Black // keeps the start position non-terminal
	p.nw, p.nb = 1, 1
	before := p.String()

	moves := p.GenerateMoves()
	var promo Move
	found := false
	for _, m := range moves {
		if m.Promotes {
			promo, found = m, true
			break
		}
	}
	if !found {
		t.Fatal("expected a promoting move to be generated")
	}

	p.Apply(promo)
	v, ok := p.Winner()
	if !ok || v != 1 {
		t.Fatalf("Winner() after promotion = (%d, %v), want (1, true)", v, ok)
	}

	p.Undo(promo)
	if p.String() != before {
		t.Fatalf("undoing a promotion did not restore state")
	}
	if _, ok := p.Winner(); ok {
		t.Fatal("Winner() still terminal after undoing the promotion")
	}
}

func TestWinnerZeroPawns(t *testing.T) {
	p := New(4)
	p.cells[p.index(0, 1)] = White
	p.nw = 1
	p.nb = 0
	v, ok := p.Winner()
	if !ok || v != 1 {
		t.Fatalf("Winner() = (%d, %v), want (1, true) when black has no pawns", v, ok)
	}
}

func TestCanonicalizeNormalizesSideToWhite(t *testing.T) {
	p := New(8)
	p.cells[p.index(3, 2)] = Black
	p.nb = 1
	p.black = true

	p.Canonicalize()
	if p.SideToMove() != White {
		t.Fatalf("side to move after canonicalize = %v, want White", p.SideToMove())
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	p := InitialPosition(8)
	p.cells[p.index(2, 3)] = White
	p.nw++
	p.black = true

	p.Canonicalize()
	once := p.String()
	p.Canonicalize()
	if p.String() != once {
		t.Fatalf("canonicalize is not idempotent:\nfirst:\n%s\nsecond:\n%s", once, p.String())
	}
}

func TestHorizontalSymmetryDetection(t *testing.T) {
	p := InitialPosition(8)
	if !p.IsHorizontallySymmetric() {
		t.Error("the standard initial position should be horizontally symmetric")
	}

	p.cells[p.index(0, 2)] = White
	p.nw++
	if p.IsHorizontallySymmetric() {
		t.Error("an asymmetric single extra pawn should break horizontal symmetry")
	}
}

func TestPruneRightHalfOriginsKeepsOnlyLeftHalf(t *testing.T) {
	p := InitialPosition(8)
	moves := p.GenerateMoves()
	pruned := p.PruneRightHalfOrigins(moves)
	for _, m := range pruned {
		if p.File(m.From) >= p.N()/2 {
			t.Fatalf("move %+v origin is not on the left half", m)
		}
	}
}

func TestEncodeDecodeThroughBoard(t *testing.T) {
	c := codec.New(8)
	p := InitialPosition(8)
	code := p.Encode(c)
	decoded := DecodePosition(c, 8, code)
	if decoded.String() != p.String() {
		t.Fatalf("decode(encode(p)) != p\noriginal:\n%s\ndecoded:\n%s", p.String(), decoded.String())
	}
}

func TestEnPassantCaptureAndUndo(t *testing.T) {
	p := New(8)
	// White pawn poised to capture en passant on a black pawn that just
	// double-stepped from rank 6 to rank 4.
	p.cells[p.index(3, 4)] = White
	p.cells[p.index(4, 4)] = Black
	p.nw, p.nb = 1, 1
	p.epFile = 4
	before := p.String()

	var epMove Move
	found := false
	for _, m := range p.GenerateMoves() {
		if m.EnPassant {
			epMove, found = m, true
		}
	}
	if !found {
		t.Fatal("expected an en-passant capture to be generated")
	}

	p.Apply(epMove)
	if p.nb != 0 {
		t.Fatalf("en-passant capture should remove the captured pawn, nb=%d", p.nb)
	}
	p.Undo(epMove)
	if p.String() != before {
		t.Fatalf("undoing an en-passant capture did not restore state")
	}
}

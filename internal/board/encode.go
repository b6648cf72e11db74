package board

import "pawnsolver/internal/codec"

// Encode converts p to its dense integer code via c, the codec for p's
// board size. The codec is supplied by the caller (built once at startup)
// rather than constructed here, since building one recomputes the
// stratum-base table.
func (p *Position) Encode(c *codec.Codec) uint64 {
	white := make([]int, 0, p.nw)
	black := make([]int, 0, p.nb)
	for sq, cell := range p.cells {
		switch cell {
		case White:
			white = append(white, sq)
		case Black:
			black = append(black, sq)
		}
	}
	return c.Encode(white, black, p.black, p.epFile)
}

// DecodePosition rebuilds a Position from a code previously produced by
// Encode on the same codec.
func DecodePosition(c *codec.Codec, n int, code uint64) *Position {
	white, black, sideBlack, epFile := c.Decode(code)
	p := New(n)
	for _, sq := range white {
		p.cells[sq] = White
	}
	for _, sq := range black {
		p.cells[sq] = Black
	}
	p.nw, p.nb = len(white), len(black)
	p.black = sideBlack
	p.epFile = epFile
	return p
}

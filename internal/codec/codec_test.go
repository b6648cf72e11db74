package codec

import (
	"math/rand"
	"sort"
	"testing"
)

func randomDisjointSets(rng *rand.Rand, universe, nw, nb int) (white, black []int) {
	perm := rng.Perm(universe)
	white = append([]int{}, perm[:nw]...)
	black = append([]int{}, perm[nw:nw+nb]...)
	sort.Ints(white)
	sort.Ints(black)
	return white, black
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New(8)
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 100000; trial++ {
		nw := rng.Intn(9)
		nb := rng.Intn(9 - nw + 1)
		if nb > 8 {
			nb = 8
		}
		white, black := randomDisjointSets(rng, c.Size(), nw, nb)
		sideBlack := rng.Intn(2) == 1
		epFile := rng.Intn(9) - 1 // -1..7

		code := c.Encode(white, black, sideBlack, epFile)
		if code >= c.CodeSpace() {
			t.Fatalf("code %d out of range %d", code, c.CodeSpace())
		}

		gotWhite, gotBlack, gotSide, gotEP := c.Decode(code)
		if !equalInts(gotWhite, white) || !equalInts(gotBlack, black) {
			t.Fatalf("round trip set mismatch: white=%v black=%v got white=%v black=%v",
				white, black, gotWhite, gotBlack)
		}
		if gotSide != sideBlack || gotEP != epFile {
			t.Fatalf("round trip side/ep mismatch: want side=%v ep=%d got side=%v ep=%d",
				sideBlack, epFile, gotSide, gotEP)
		}
	}
}

func TestStratumBasesMonotone(t *testing.T) {
	c := New(8)
	for i := 1; i < len(c.flatBase); i++ {
		if c.flatBase[i] < c.flatBase[i-1] {
			t.Fatalf("stratum base table is not monotone at index %d", i)
		}
	}
}

func TestCodeSpaceBound(t *testing.T) {
	c := New(4)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5000; trial++ {
		nw := rng.Intn(5)
		nb := rng.Intn(5)
		white, black := randomDisjointSets(rng, c.Size(), nw, nb)
		code := c.Encode(white, black, rng.Intn(2) == 1, rng.Intn(5)-1)
		if code >= c.CodeSpace() {
			t.Fatalf("encode produced code %d >= CodeSpace %d", code, c.CodeSpace())
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

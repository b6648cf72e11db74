package engine

import (
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestProbeAfterAdd(t *testing.T) {
	tt := NewTable(1009)
	codes := []uint64{0, 1, 1008, 1009, 2019, 123456}
	for _, c := range codes {
		tt.Add(c, CurrentWin)
		if got := tt.Probe(c); got != CurrentWin {
			t.Errorf("Probe(%d) = %v after Add, want CURRENT_WIN", c, got)
		}
	}
}

func TestProbeMissOnEmptyIsNone(t *testing.T) {
	tt := NewTable(97)
	if got := tt.Probe(42); got != None {
		t.Errorf("Probe on empty slot = %v, want NONE", got)
	}
}

func TestProbeCollisionIsMissNotError(t *testing.T) {
	tt := NewTable(100)
	// codes 5 and 105 collide in a capacity-100 table.
	tt.Add(5, CurrentWin)
	if got := tt.Probe(105); got != None {
		t.Errorf("Probe(105) after Add(5,...) = %v, want NONE (collision is a miss)", got)
	}
}

func TestAddBoundsMergeNotOverwrite(t *testing.T) {
	tt := NewTable(17)
	tt.Add(3, LowerBound0)
	tt.Add(3, UpperBound0)
	if got := tt.Probe(3); got != Draw {
		t.Errorf("merged bounds = %v, want DRAW", got)
	}
}

func TestAddExactOverwritesBound(t *testing.T) {
	tt := NewTable(17)
	tt.Add(3, LowerBound0)
	tt.Add(3, CurrentWin)
	if got := tt.Probe(3); got != CurrentWin {
		t.Errorf("exact over bound = %v, want CURRENT_WIN", got)
	}
}

func TestAddWithSpillReportsDisplacedEntry(t *testing.T) {
	tt := NewTable(50)
	tt.Add(7, CurrentWin)
	spilled, ok := tt.AddWithSpill(57, Draw)
	if !ok {
		t.Fatal("expected a spill when 57 displaces 7 in a capacity-50 table")
	}
	if spilled.code != 7 || spilled.kind != CurrentWin {
		t.Errorf("spilled = %+v, want code=7 kind=CURRENT_WIN", spilled)
	}
	if got := tt.Probe(57); got != Draw {
		t.Errorf("Probe(57) = %v, want DRAW", got)
	}
	if got := tt.Probe(7); got != None {
		t.Errorf("Probe(7) = %v, want NONE (displaced)", got)
	}
}

func TestConcurrentAddsAndProbesNoTornReads(t *testing.T) {
	tt := NewTable(1_000_000)
	const workers = 8
	const opsPerWorker = 20000

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			// Each code always gets the same kind: two different kinds
			// for one code can be a contradiction, which Merge rejects
			// by panicking.
			kinds := []ResultKind{CurrentWin, CurrentLoss, Draw, LowerBound0, UpperBound0}
			for i := 0; i < opsPerWorker; i++ {
				code := uint64(rng.Intn(1_000_000))
				tt.Add(code, kinds[code%uint64(len(kinds))])
				_ = tt.Probe(uint64(rng.Intn(1_000_000)))
			}
		}(int64(w))
	}
	wg.Wait()

	// Every observed word must be a validly packed (key, kind) pair: the
	// kind field must be one of the six defined values, never garbage from
	// a torn read.
	for i := range tt.slots {
		word := tt.slots[i].Load()
		if word == 0 {
			continue
		}
		_, kind := unpack(word)
		if kind >= numResultKinds {
			t.Fatalf("slot %d holds an invalid result kind %d (torn read?)", i, kind)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bin")

	tt := NewTable(2003)
	tt.Add(10, CurrentWin)
	tt.Add(2012, Draw)
	tt.Add(999, LowerBound0)

	if err := tt.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadTable(path, 2003)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	for _, code := range []uint64{10, 2012, 999} {
		want := tt.Probe(code)
		got := loaded.Probe(code)
		if got != want {
			t.Errorf("Probe(%d) after reload = %v, want %v", code, got, want)
		}
	}
}

func TestLoadRejectsCapacityMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bin")

	tt := NewTable(500)
	if err := tt.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := LoadTable(path, 501); err == nil {
		t.Fatal("expected an error loading a dump with a mismatched capacity")
	}
}

func TestSaveDoesNotCorruptOnTempFileFailure(t *testing.T) {
	// Saving into a directory that doesn't exist must fail cleanly and
	// leave no partial file at the destination path.
	tt := NewTable(11)
	badPath := filepath.Join(t.TempDir(), "missing-dir", "dump.bin")
	if err := tt.Save(badPath); err == nil {
		t.Fatal("expected Save to fail when the destination directory is missing")
	}
	if _, err := os.Stat(badPath); err == nil {
		t.Fatal("Save left a file behind despite failing")
	}
}

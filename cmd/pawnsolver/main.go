// Command pawnsolver computes the game-theoretic value of the pawns-only
// initial position for the compiled-in board size. It takes no flags and no
// subcommands: every tunable lives in internal/config.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"pawnsolver/internal/board"
	"pawnsolver/internal/codec"
	"pawnsolver/internal/config"
	"pawnsolver/internal/engine"
	"pawnsolver/internal/storage"
)

const tableFileName = "pawnsolver.tt"

func main() {
	c := codec.New(config.BoardSize)

	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		log.Fatalf("pawnsolver: resolve data directory: %v", err)
	}
	tablePath := filepath.Join(dataDir, tableFileName)

	front, err := engine.LoadTable(tablePath, config.DefaultCapacity)
	if err != nil {
		log.Printf("pawnsolver: no usable table dump at %s (%v); starting fresh", tablePath, err)
		front = engine.NewTable(config.DefaultCapacity)
	} else {
		log.Printf("pawnsolver: loaded table dump from %s", tablePath)
	}

	backingDir, err := storage.DefaultBackingStoreDir()
	if err != nil {
		log.Fatalf("pawnsolver: resolve backing store directory: %v", err)
	}
	backing, err := storage.Open(backingDir)
	if err != nil {
		log.Fatalf("pawnsolver: open backing store: %v", err)
	}
	defer backing.Close()

	tt := engine.NewChainedTable(front, backing)
	pool := engine.NewPool(config.PoolSize)
	eng := engine.NewEngine(c, tt, pool)

	reporter, err := engine.NewReporter(eng, tt, config.BoardSize)
	if err != nil {
		log.Fatalf("pawnsolver: build telemetry reporter: %v", err)
	}
	defer reporter.Close()

	// front.Save reads each slot through its own atomic load, independent
	// of every other slot, so it is safe to call concurrently with an
	// in-progress search without pausing it — no depth-1 synchronization
	// point is needed (see DESIGN.md's resolution of this open question).
	save := func() {
		if err := front.Save(tablePath); err != nil {
			log.Printf("pawnsolver: save failed: %v", err)
			return
		}
		log.Printf("pawnsolver: saved table to %s", tablePath)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT)
	go func() {
		for s := range sig {
			save()
			if s == syscall.SIGINT {
				os.Exit(0)
			}
		}
	}()

	ticker := time.NewTicker(config.TelemetryInterval * time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				reporter.WriteLine(os.Stdout)
			case <-done:
				return
			}
		}
	}()

	start := time.Now()
	pos := board.InitialPosition(config.BoardSize)
	value := eng.Search(pos)
	close(done)

	save()
	fmt.Println(engine.FormatFinalLine(time.Since(start), value))
}

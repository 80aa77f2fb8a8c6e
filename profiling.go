package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// recordPGO writes a CPU profile to pgoProfileFileName while the camera
// walks on its own for pgoRecordDuration. The returned stop function is safe
// to call early; it also fires once the walk ends.
func (g *Game) recordPGO() (func(), error) {
	f, err := os.Create(pgoProfileFileName)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", pgoProfileFileName, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	start := time.Now()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				slog.Warn("closing PGO profile", "path", pgoProfileFileName, "err", err)
				return
			}
			slog.Info("PGO profile written", "path", pgoProfileFileName, "elapsed", time.Since(start).Round(time.Millisecond))
		})
	}
	g.enableAutoWalk(pgoRecordDuration)
	time.AfterFunc(pgoRecordDuration, stop)
	slog.Info("recording PGO profile", "path", pgoProfileFileName, "duration", pgoRecordDuration)
	return stop, nil
}

// startScripts applies -auto-walk and -record-default-pgo to a fresh game.
// The returned function stops any profile still being written.
func (g *Game) startScripts() func() {
	if *autoWalkFlag > 0 {
		g.enableAutoWalk(*autoWalkFlag)
	}
	if !*recordDefaultPGO {
		return func() {}
	}
	stop, err := g.recordPGO()
	if err != nil {
		slog.Warn("PGO recording disabled", "err", err)
		return func() {}
	}
	return stop
}

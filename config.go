package main

import "time"

// Runtime constants shared by the frontends. Scene values such as the map,
// field of view and camera tuning come from the YAML config instead.
const (
	defaultConfigPath   = "config.yaml"
	defaultTPS          = 60
	terminalTick        = time.Second / 30
	minimapCellPx       = 6
	minimapMargin       = 8
	hudFontSize         = 13
	hudLineSpacing      = 16
	pgoRecordDuration   = 15 * time.Second
	autoWalkMinTicks    = 20
	autoWalkMaxTicks    = 70
	autoWalkClearance   = 1.0
	pgoProfileFileName  = "default.pgo"
	windowTitle         = "GridCaster"
	terminalStatusEvery = 10
)

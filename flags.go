package main

import "flag"

// Command-line flags that select the frontend and override values from the
// YAML config. Zero or empty values leave the config untouched.
var (
	// configPathFlag names the YAML scene file.
	configPathFlag = flag.String("config", defaultConfigPath, "path to the YAML config file")

	// frontendFlag selects where frames are presented.
	frontendFlag = flag.String("frontend", "window", "presentation: window, terminal or snapshot")

	// backendFlag selects the distance marcher.
	backendFlag = flag.String("backend", "cpu", "ray marcher: cpu or opencl (needs -tags opencl)")

	// workersFlag sets the render pool size; 0 uses one worker per CPU.
	workersFlag = flag.Int("workers", 0, "render worker goroutines (0 = one per CPU)")

	// cacheCapacityFlag overrides cache_capacity from the config.
	cacheCapacityFlag = flag.Int("cache-capacity", 0, "ray cache entries (0 = config value)")

	// noCacheFlag disables ray memoization entirely.
	noCacheFlag = flag.Bool("no-cache", false, "disable the ray distance cache")

	// windowScaleFlag multiplies the window size relative to the frame size.
	windowScaleFlag = flag.Int("window-scale", 1, "window size multiplier")

	// debugFlag enables the FPS and cache overlay.
	debugFlag = flag.Bool("debug", false, "show FPS, frame time and cache overlay")

	// minimapFlag shows the top-down overlay at startup.
	minimapFlag = flag.Bool("minimap", false, "show the minimap overlay")

	// snapshotOutFlag is where the snapshot frontend writes its PNG.
	snapshotOutFlag = flag.String("snapshot-out", "frame.png", "PNG path written by -frontend=snapshot")

	// snapshotTicksFlag is how many ticks the snapshot frontend simulates.
	snapshotTicksFlag = flag.Int("snapshot-ticks", 1, "ticks to simulate before writing the snapshot")

	// autoWalkFlag drives the camera with scripted input for the given time.
	autoWalkFlag = flag.Duration("auto-walk", 0, "walk randomly for this long before handing control back")

	// recordDefaultPGO triggers a scripted walk to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "walk randomly for 15s while capturing default.pgo")

	// logLevelFlag sets the minimum slog level.
	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

// Package glowcast turns an addressable LED strip into an ambient
// weather display.
//
// Glowcast polls a weather API on a fixed cadence, extracts the current
// temperature from the JSON response, classifies it into a color band,
// and commits that color uniformly to the strip. It is designed as an
// SDK-first library with immutable types, pure classification
// functions, and composable configuration via the functional options
// pattern.
//
// # Quick Start
//
// Create a station, pick a strip driver, and start with graceful
// shutdown:
//
//	st, _ := glowcast.NewStation("Home", "2643743", os.Getenv("GLOWCAST_API_KEY"))
//	ledStrip, _ := glowcast.NewTerminalStrip(nil, 16)
//
//	gc, _ := glowcast.New(
//	    glowcast.WithStation(st),
//	    glowcast.WithStrip(ledStrip),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	gc.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// Glowcast uses the functional options pattern for configuration:
//
//	gc, err := glowcast.New(
//	    glowcast.WithStation(st),
//	    glowcast.WithStrip(ledStrip),
//	    glowcast.WithPollInterval(10 * time.Minute),
//	    glowcast.WithBrightness(80),
//	    glowcast.WithPort(8080),
//	)
//
// Stations can also be configured with options:
//
//	st, err := glowcast.NewStation("Home", "2643743", key,
//	    glowcast.WithUnits("metric"),
//	    glowcast.WithTimeout(5 * time.Second),
//	    glowcast.WithFieldPath("main.temp"),
//	)
//
// # Temperature Classification
//
// A [Palette] maps temperatures to colors via ordered bands evaluated
// warmest-first. [DefaultPalette] covers the full temperature range
// (red above 30°C down to white below 10°C); custom palettes are built
// with [NewPalette]. Classification is total: every temperature maps
// to exactly one color, and a failed poll cycle leaves the previously
// displayed color untouched.
//
// # Strip Drivers
//
// The [Strip] interface separates staging (Fill) from committing
// (Show), so every visible update is a complete frame. Built-in
// drivers: [NewTerminalStrip] for development, [NewOPCStrip] for Open
// Pixel Controller hardware, [NewMemoryStrip] for tests.
//
// # Architecture
//
// Glowcast consists of several internal packages (under internal/):
//
//   - internal/poller: HTTP weather polling on a fixed cadence
//   - internal/strip: LED strip drivers
//   - internal/store: current display state with pub/sub for live updates
//   - internal/server: HTTP status server with REST API and Server-Sent Events
//   - dashboard: embedded status page assets
//
// The internal packages are not part of the public API and may change
// without notice. The library is designed for single-binary deployment
// using Go's embed directive for static assets.
package glowcast

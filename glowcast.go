package glowcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/glowcast/dashboard"
	"github.com/jpalmerr/glowcast/internal/poller"
	"github.com/jpalmerr/glowcast/internal/server"
	"github.com/jpalmerr/glowcast/internal/store"
)

const (
	defaultPollInterval = 10 * time.Minute
	defaultBrightness   = 255
)

// Glowcast is the main orchestrator for weather polling and the LED
// display.
//
// Glowcast polls a weather station on a fixed cadence, classifies the
// temperature into a palette color, and commits that color to the
// configured strip. It is created using [New] with functional options
// and started with [Glowcast.Start].
//
// The typical lifecycle is:
//
//	gc, err := glowcast.New(
//	    glowcast.WithStation(st),
//	    glowcast.WithStrip(ledStrip),
//	)
//	if err != nil {
//	    slog.Error("failed to create glowcast", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	gc.Start(ctx) // blocks until context cancelled
//
// The caller controls the lifecycle via the context. Cancel the context
// to trigger graceful shutdown.
type Glowcast struct {
	title           string
	station         Station
	strip           Strip
	palette         Palette
	pollInterval    time.Duration
	brightness      uint8
	port            int
	logger          *slog.Logger
	sampleCallbacks []func(SampleResult)
}

// New creates a new [Glowcast] instance with the given options.
//
// A station ([WithStation]) and a strip ([WithStrip]) are required.
// Other options have sensible defaults:
//   - Palette: [DefaultPalette]
//   - Poll interval: 10 minutes
//   - Brightness: 255
//   - Status server: disabled (enable with [WithPort])
//
// Returns an error if required options are missing or any option is
// invalid.
func New(opts ...Option) (*Glowcast, error) {
	cfg := &gcConfig{
		pollInterval: defaultPollInterval,
		brightness:   defaultBrightness,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if !cfg.hasStation {
		return nil, errors.New("a station is required")
	}
	if cfg.strip == nil {
		return nil, errors.New("a strip is required")
	}
	if !cfg.hasPalette {
		cfg.palette = DefaultPalette
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Glowcast{
		title:           cfg.title,
		station:         cfg.station,
		strip:           cfg.strip,
		palette:         cfg.palette,
		pollInterval:    cfg.pollInterval,
		brightness:      cfg.brightness,
		port:            cfg.port,
		logger:          logger,
		sampleCallbacks: cfg.sampleCallbacks,
	}, nil
}

// Start begins polling the station and driving the strip.
//
// Start is a blocking call that runs until the provided context is
// cancelled. During execution:
//
//   - The weather host is dialed until reachable (1s fixed backoff,
//     no retry cap)
//   - The station is polled immediately, then at the configured interval
//   - Each successful cycle commits a color to the strip; failed cycles
//     are logged and leave the previous color displayed
//   - If a port is configured, the HTTP status server runs alongside
//
// Returns nil on graceful shutdown. Returns an error if the status
// server fails to start. Start does not close the strip; the caller
// retains ownership.
func (g *Glowcast) Start(ctx context.Context) error {
	g.logger.Info("glowcast starting",
		"station", g.station.Name(),
		"location_id", g.station.LocationID(),
		"interval", g.pollInterval.String(),
	)

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	extractor := g.station.Extractor()
	if extractor == nil {
		extractor = DefaultTempExtractor
	}

	source := poller.SourceInfo{
		Name:      g.station.Name(),
		URL:       g.station.URL(),
		Timeout:   g.station.Timeout(),
		Extractor: poller.TempExtractor(extractor),
	}
	scheduler := poller.NewScheduler(source, g.pollInterval, g.logger)

	// connect phase: block until the weather host is reachable
	if err := scheduler.AwaitReachable(ctx); err != nil {
		// context cancelled while waiting; this is a normal shutdown
		scheduler.Stop()
		return nil
	}
	g.logger.Info("weather host reachable", "station", g.station.Name())

	displayStore := store.NewMemoryStore()

	scheduler.Start(ctx)

	// track the results consumer goroutine to ensure clean shutdown
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for result := range scheduler.Results() {
			g.handleResult(result, displayStore)
		}
	}()

	// cleanup function ensures the scheduler is stopped and all results
	// are processed
	cleanup := func() {
		scheduler.Stop() // closes results channel
		wg.Wait()        // wait for all results to be processed
	}

	// start the HTTP status server if configured
	if g.port > 0 {
		httpServer := server.NewServer(displayStore, g.port, dashboard.Assets, g.title, g.logger)
		if err := httpServer.Start(ctx); err != nil {
			cleanup()
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		g.logger.Info("status page available", "url", fmt.Sprintf("http://localhost:%d", g.port))
	}

	<-ctx.Done()
	cleanup()
	g.logger.Info("glowcast stopped")
	return nil
}

// handleResult processes one poll result: classify, apply, store,
// notify. Failed cycles leave the store and strip untouched so the
// previous display state is retained.
func (g *Glowcast) handleResult(result poller.Result, displayStore store.Store) {
	sample := SampleResult{
		StationName: result.SourceName,
		URL:         result.URL,
		Latency:     result.Latency,
		CheckedAt:   result.CheckedAt,
		RawResponse: result.RawResponse,
		Err:         result.Err,
	}

	if result.Err != nil {
		g.logger.Warn("poll cycle abandoned",
			"station", result.SourceName,
			"failure", string(result.Failure),
			"error", result.Err.Error(),
		)
		g.fireCallbacks(sample)
		return
	}

	c := g.palette.Classify(result.TemperatureC)
	scaled := c.Scale(g.brightness)
	sample.TemperatureC = result.TemperatureC
	sample.Color = c

	if err := g.applyColor(scaled); err != nil {
		g.logger.Warn("strip update failed",
			"station", result.SourceName,
			"color", c.String(),
			"error", err.Error(),
		)
		sample.Err = err
		g.fireCallbacks(sample)
		return
	}
	sample.Applied = true

	// store update first (callbacks fire after data is persisted)
	displayStore.Update(store.DisplayState{
		Station:      result.SourceName,
		TemperatureC: result.TemperatureC,
		R:            scaled.R,
		G:            scaled.G,
		B:            scaled.B,
		Hex:          scaled.String(),
		UpdatedAt:    time.Now(),
	})

	g.fireCallbacks(sample)

	// DEBUG level for routine updates to reduce noise
	g.logger.Debug("display updated",
		"station", result.SourceName,
		"temperature", result.TemperatureC,
		"color", c.String(),
		"latency_ms", result.Latency.Milliseconds(),
	)
}

// applyColor commits a color to the strip as one visible update.
func (g *Glowcast) applyColor(c Color) error {
	if err := g.strip.Fill(c); err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	if err := g.strip.Show(); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	return nil
}

// fireCallbacks invokes all registered sample callbacks in order.
func (g *Glowcast) fireCallbacks(sample SampleResult) {
	for _, cb := range g.sampleCallbacks {
		invokeCallbackSafe(cb, sample, g.logger)
	}
}

// invokeCallbackSafe calls a sample callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(SampleResult), sample SampleResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("sample callback panicked",
				"panic", r,
				"station", sample.StationName,
			)
		}
	}()
	cb(sample)
}

// Station returns the configured weather station.
func (g *Glowcast) Station() Station {
	return g.station
}

// Palette returns the configured palette.
func (g *Glowcast) Palette() Palette {
	return g.palette
}

// PollInterval returns the configured interval between poll cycles.
func (g *Glowcast) PollInterval() time.Duration {
	return g.pollInterval
}

// Brightness returns the configured brightness scale (1-255).
func (g *Glowcast) Brightness() uint8 {
	return g.brightness
}

// Port returns the configured HTTP port for the status server, or 0 if
// the server is disabled.
func (g *Glowcast) Port() int {
	return g.port
}

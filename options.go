package glowcast

import (
	"errors"
	"log/slog"
	"time"
)

// gcConfig holds mutable state during Glowcast construction.
type gcConfig struct {
	title           string
	station         Station
	hasStation      bool
	strip           Strip
	palette         Palette
	hasPalette      bool
	pollInterval    time.Duration
	brightness      uint8
	port            int
	logger          *slog.Logger
	sampleCallbacks []func(SampleResult)
}

// Option is a function that configures a [Glowcast] instance during
// construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithStation], [WithStrip], [WithPalette],
// [WithPollInterval], [WithBrightness], [WithPort], [WithTitle],
// [WithLogger], [WithSampleCallback].
type Option func(*gcConfig) error

// WithStation sets the weather [Station] to poll.
//
// Exactly one station is required. There is deliberately a single
// source: the display state is a pure function of the latest sample,
// which only holds when one sample stream drives the strip.
//
// Returns an error if a station was already configured.
func WithStation(st Station) Option {
	return func(cfg *gcConfig) error {
		if cfg.hasStation {
			return errors.New("station already configured (only one station is supported)")
		}
		cfg.station = st
		cfg.hasStation = true
		return nil
	}
}

// WithStrip sets the LED [Strip] driver.
//
// A strip is required. Built-in drivers: [NewTerminalStrip],
// [NewOPCStrip], [NewMemoryStrip]. The caller retains ownership and is
// responsible for closing the strip after [Glowcast.Start] returns.
//
// Returns an error if the strip is nil.
func WithStrip(s Strip) Option {
	return func(cfg *gcConfig) error {
		if s == nil {
			return errors.New("strip cannot be nil")
		}
		cfg.strip = s
		return nil
	}
}

// WithPalette sets the temperature [Palette].
// Defaults to [DefaultPalette] if not specified.
func WithPalette(p Palette) Option {
	return func(cfg *gcConfig) error {
		cfg.palette = p
		cfg.hasPalette = true
		return nil
	}
}

// WithPollInterval sets the time between poll cycles.
//
// The station is polled once immediately on start, then on this fixed
// cadence with no jitter. Defaults to 10 minutes if not specified.
//
// Returns an error if the duration is zero or negative.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *gcConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.pollInterval = d
		return nil
	}
}

// WithBrightness scales every applied color by brightness/255.
//
// Defaults to 255 (full brightness). The palette color reported in
// callbacks and logs is the unscaled color; scaling applies only to
// what is written to the strip.
//
// Returns an error if brightness is zero (which would blank the strip
// on every frame).
func WithBrightness(brightness uint8) Option {
	return func(cfg *gcConfig) error {
		if brightness == 0 {
			return errors.New("brightness must be positive")
		}
		cfg.brightness = brightness
		return nil
	}
}

// WithPort enables the HTTP status server on the given port.
//
// The status page and API will be available at http://localhost:<port>.
// The server is disabled if this option is not used.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *gcConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the status page title displayed in the browser tab
// and header.
//
// If not specified, defaults to "Glowcast".
func WithTitle(title string) Option {
	return func(cfg *gcConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Glowcast instance.
//
// This allows SDK consumers to control where logs are written and in
// what format. If not specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *gcConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithSampleCallback registers a function to be called after every poll
// cycle, successful or not.
//
// The callback receives a [SampleResult] containing the cycle outcome,
// including the extracted temperature, the applied color, and the raw
// HTTP response.
//
// Multiple callbacks may be registered by calling WithSampleCallback
// multiple times; they execute in registration order.
//
// IMPORTANT: Callbacks must be non-blocking. Long-running operations
// should dispatch work to a separate goroutine. Blocking callbacks will
// delay subsequent poll result processing.
//
// Callbacks are invoked synchronously from a single goroutine. Panics
// within callbacks are recovered and logged; they do not crash the
// poll loop.
//
// Nil callbacks are silently ignored.
func WithSampleCallback(cb func(SampleResult)) Option {
	return func(cfg *gcConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.sampleCallbacks = append(cfg.sampleCallbacks, cb)
		return nil
	}
}

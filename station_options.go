package glowcast

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// stationConfig holds mutable state during Station construction.
type stationConfig struct {
	baseURL   string
	units     string
	timeout   time.Duration
	extractor TempExtractor
}

// StationOption is a function that configures a [Station] during
// construction via [NewStation].
//
// Built-in options: [WithBaseURL], [WithUnits], [WithTimeout],
// [WithFieldPath], [WithExtractor].
type StationOption func(*stationConfig) error

// WithBaseURL overrides the weather provider base URL.
//
// The default is the OpenWeatherMap current-weather endpoint. Override
// this to target a compatible provider, a proxy, or a test server.
//
// Example:
//
//	st, err := glowcast.NewStation("Home", "2643743", key,
//	    glowcast.WithBaseURL("http://localhost:9999/weather"),
//	)
//
// Returns an error if the URL is invalid or has no http/https scheme.
func WithBaseURL(rawURL string) StationOption {
	return func(cfg *stationConfig) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.New("invalid base URL: " + err.Error())
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("base URL scheme must be http or https, got %q", u.Scheme)
		}
		cfg.baseURL = rawURL
		return nil
	}
}

// WithUnits sets the unit system requested from the provider.
//
// Accepted values are "metric" (Celsius), "imperial" (Fahrenheit), and
// "standard" (Kelvin). Defaults to "metric". Palette band bounds are
// interpreted in whatever unit the provider returns, so a non-metric
// station usually needs a matching custom palette.
func WithUnits(units string) StationOption {
	return func(cfg *stationConfig) error {
		switch units {
		case "metric", "imperial", "standard":
			cfg.units = units
			return nil
		default:
			return fmt.Errorf("units must be metric, imperial, or standard, got %q", units)
		}
	}
}

// WithTimeout sets the per-request HTTP timeout for the station.
// Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) StationOption {
	return func(cfg *stationConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithFieldPath sets the JSON field (dot notation) holding the
// temperature in the provider's response.
//
// This is shorthand for WithExtractor(JSONTempExtractor(path)).
// Defaults to "main.temp".
func WithFieldPath(path string) StationOption {
	return func(cfg *stationConfig) error {
		if path == "" {
			return errors.New("field path cannot be empty")
		}
		cfg.extractor = JSONTempExtractor(path)
		return nil
	}
}

// WithExtractor sets a custom [TempExtractor] for the station, replacing
// the default JSON field lookup entirely.
//
// Returns an error if the extractor is nil.
func WithExtractor(extractor TempExtractor) StationOption {
	return func(cfg *stationConfig) error {
		if extractor == nil {
			return errors.New("extractor cannot be nil")
		}
		cfg.extractor = extractor
		return nil
	}
}

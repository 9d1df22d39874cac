// Package config provides YAML configuration parsing for glowcast.
//
// This package enables running glowcast as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Living Room Glow
//	port: 8080
//	poll_interval: 10m
//
//	station:
//	  name: Home
//	  location_id: "2643743"
//	  api_key: ${GLOWCAST_API_KEY}
//	  units: metric
//
//	strip:
//	  driver: terminal
//	  pixels: 16
//	  brightness: 80
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed polling interval.
// This prevents accidental DoS of the weather API (and burned API
// quota) from overly aggressive polling.
const minPollInterval = 1 * time.Second

// defaults applied by Parse.
const (
	defaultPollInterval = 10 * time.Minute
	defaultDriver       = "terminal"
	defaultPixels       = 16
	defaultBrightness   = 255
)

// Config is the root configuration structure for glowcast.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the status page title. Defaults to "Glowcast" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP status server port. 0 (the default) disables
	// the server.
	Port int `yaml:"port"`

	// PollInterval is the time between poll cycles.
	// Accepts duration strings like "10m", "30s". Defaults to 10m.
	PollInterval Duration `yaml:"poll_interval"`

	// Station configures the weather data source.
	Station StationConfig `yaml:"station"`

	// Strip configures the LED strip driver.
	Strip StripConfig `yaml:"strip"`

	// Palette optionally overrides the built-in temperature bands.
	// Entries are ordered warmest to coldest; the last entry must have
	// no bound and acts as the floor for everything colder.
	Palette []BandConfig `yaml:"palette"`
}

// StationConfig defines the weather data source.
type StationConfig struct {
	// Name is the display name used in logs and the status API.
	Name string `yaml:"name"`

	// LocationID identifies the location to the weather provider
	// (an OpenWeatherMap city ID by default).
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	LocationID string `yaml:"location_id"`

	// APIKey is the provider access credential.
	// Supports environment variable substitution.
	APIKey string `yaml:"api_key"`

	// Units is the unit system: metric, imperial, or standard.
	// Defaults to metric.
	Units string `yaml:"units"`

	// Field is the JSON dot path of the temperature in the provider
	// response. Defaults to "main.temp".
	Field string `yaml:"field"`

	// BaseURL overrides the provider endpoint. Defaults to the
	// OpenWeatherMap current-weather endpoint.
	// Supports environment variable substitution.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`
}

// StripConfig defines the LED strip driver.
type StripConfig struct {
	// Driver selects the strip implementation: "terminal", "opc", or
	// "memory". Defaults to "terminal".
	Driver string `yaml:"driver"`

	// Pixels is the number of addressable LEDs. Defaults to 16.
	Pixels int `yaml:"pixels"`

	// Brightness scales every applied color (1-255). Defaults to 255.
	Brightness int `yaml:"brightness"`

	// OPC configures the Open Pixel Controller driver (driver: opc).
	OPC OPCConfig `yaml:"opc"`
}

// OPCConfig defines the Open Pixel Controller connection.
type OPCConfig struct {
	// Addr is the controller host:port, e.g. "localhost:7890".
	// Supports environment variable substitution.
	Addr string `yaml:"addr"`

	// Channel is the OPC channel (0-255). 0 broadcasts to all channels
	// on most controllers.
	Channel int `yaml:"channel"`
}

// BandConfig defines one palette band.
//
// Exactly one bound style is allowed per entry:
//
//	- above: 30        # strict bound; matches t > 30 (first entry only)
//	  color: "#ff0000"
//	- min: 25          # inclusive bound; matches t >= 25
//	  color: "#00ff00"
//	- color: "#ffffff" # no bound; the floor for everything colder (last entry only)
type BandConfig struct {
	// Above is a strict lower bound (t > Above). Only valid on the
	// first (warmest) entry.
	Above *float64 `yaml:"above"`

	// Min is an inclusive lower bound (t >= Min).
	Min *float64 `yaml:"min"`

	// Color is the band color as "#rrggbb".
	Color string `yaml:"color"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		// submatches[2] is ":-..." (non-empty if default syntax was used)
		// submatches[3] is the actual default value (may be empty for ${VAR:-})
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in credential and address values.
// Defaults are applied for PollInterval (10m), the strip driver
// (terminal, 16 pixels, full brightness), units (metric), and the
// temperature field (main.temp).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.PollInterval == 0 {
		cfg.PollInterval = Duration(defaultPollInterval)
	}
	if cfg.Strip.Driver == "" {
		cfg.Strip.Driver = defaultDriver
	}
	if cfg.Strip.Pixels == 0 {
		cfg.Strip.Pixels = defaultPixels
	}
	if cfg.Strip.Brightness == 0 {
		cfg.Strip.Brightness = defaultBrightness
	}
	if cfg.Station.Units == "" {
		cfg.Station.Units = "metric"
	}
	if cfg.Station.Field == "" {
		cfg.Station.Field = "main.temp"
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the
// config.
func (c *Config) expandAndValidate() error {
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if c.Port != 0 && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if err := c.validateStation(); err != nil {
		return err
	}
	if err := c.validateStrip(); err != nil {
		return err
	}
	return c.validatePalette()
}

func (c *Config) validateStation() error {
	st := &c.Station

	if st.Name == "" {
		return errors.New("station: name is required")
	}

	if st.LocationID == "" {
		return errors.New("station: location_id is required")
	}
	expanded, err := expandEnvVars(st.LocationID)
	if err != nil {
		return fmt.Errorf("station: location_id: %w", err)
	}
	st.LocationID = expanded

	if st.APIKey == "" {
		return errors.New("station: api_key is required")
	}
	expanded, err = expandEnvVars(st.APIKey)
	if err != nil {
		return fmt.Errorf("station: api_key: %w", err)
	}
	st.APIKey = expanded

	switch st.Units {
	case "metric", "imperial", "standard":
	default:
		return fmt.Errorf("station: units must be metric, imperial, or standard, got %q", st.Units)
	}

	if st.BaseURL != "" {
		expanded, err = expandEnvVars(st.BaseURL)
		if err != nil {
			return fmt.Errorf("station: base_url: %w", err)
		}
		st.BaseURL = expanded

		parsedURL, err := url.Parse(st.BaseURL)
		if err != nil {
			return fmt.Errorf("station: invalid base_url: %w", err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("station: base_url scheme must be http or https, got %q", parsedURL.Scheme)
		}
	}

	if st.Timeout != 0 {
		if st.Timeout.Duration() < 0 {
			return fmt.Errorf("station: timeout cannot be negative, got %s", st.Timeout.Duration())
		}
		if st.Timeout.Duration() < time.Second {
			return fmt.Errorf("station: timeout must be at least 1s if specified, got %s", st.Timeout.Duration())
		}
	}

	return nil
}

func (c *Config) validateStrip() error {
	s := &c.Strip

	switch s.Driver {
	case "terminal", "opc", "memory":
	default:
		return fmt.Errorf("strip: driver must be terminal, opc, or memory, got %q", s.Driver)
	}

	if s.Pixels < 1 {
		return fmt.Errorf("strip: pixels must be positive, got %d", s.Pixels)
	}

	if s.Brightness < 1 || s.Brightness > 255 {
		return fmt.Errorf("strip: brightness must be between 1 and 255, got %d", s.Brightness)
	}

	if s.Driver == "opc" {
		if s.OPC.Addr == "" {
			return errors.New("strip: opc.addr is required for the opc driver")
		}
		expanded, err := expandEnvVars(s.OPC.Addr)
		if err != nil {
			return fmt.Errorf("strip: opc.addr: %w", err)
		}
		s.OPC.Addr = expanded

		if s.OPC.Channel < 0 || s.OPC.Channel > 255 {
			return fmt.Errorf("strip: opc.channel must be between 0 and 255, got %d", s.OPC.Channel)
		}
	}

	return nil
}

func (c *Config) validatePalette() error {
	if len(c.Palette) == 0 {
		return nil // use the built-in palette
	}
	if len(c.Palette) < 2 {
		return errors.New("palette: at least two entries are required (one band and the floor)")
	}

	for i, band := range c.Palette {
		context := fmt.Sprintf("palette[%d]", i)

		if band.Color == "" {
			return fmt.Errorf("%s: color is required", context)
		}
		if _, err := ParseHexColor(band.Color); err != nil {
			return fmt.Errorf("%s: %w", context, err)
		}

		last := i == len(c.Palette)-1
		switch {
		case last:
			if band.Above != nil || band.Min != nil {
				return fmt.Errorf("%s: the last entry is the floor and must have no bound", context)
			}
		case band.Above != nil && band.Min != nil:
			return fmt.Errorf("%s: above and min are mutually exclusive", context)
		case band.Above != nil && i != 0:
			return fmt.Errorf("%s: above is only valid on the first entry", context)
		case band.Above == nil && band.Min == nil:
			return fmt.Errorf("%s: a bound (above or min) is required", context)
		}
	}

	// bounds must strictly decrease so every temperature maps to one band
	prev := 0.0
	for i, band := range c.Palette[:len(c.Palette)-1] {
		bound := band.Min
		if band.Above != nil {
			bound = band.Above
		}
		if i > 0 && *bound >= prev {
			return fmt.Errorf("palette[%d]: bounds must be strictly decreasing (%v >= %v)", i, *bound, prev)
		}
		prev = *bound
	}

	return nil
}

// hexColorPattern matches "#rrggbb" (case-insensitive).
var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{6})$`)

// ParseHexColor parses a "#rrggbb" string into RGB components.
func ParseHexColor(s string) ([3]uint8, error) {
	m := hexColorPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return [3]uint8{}, fmt.Errorf("invalid color %q (expected \"#rrggbb\")", s)
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		var v int
		if _, err := fmt.Sscanf(m[1][i*2:i*2+2], "%02x", &v); err != nil {
			return [3]uint8{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}

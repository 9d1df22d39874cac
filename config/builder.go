package config

import (
	"fmt"
	"time"

	"github.com/jpalmerr/glowcast"
)

// BuildStation creates a [glowcast.Station] from the station config.
// The config must already be validated via [Parse] or [Load].
func BuildStation(cfg StationConfig) (glowcast.Station, error) {
	opts := []glowcast.StationOption{
		glowcast.WithUnits(cfg.Units),
		glowcast.WithFieldPath(cfg.Field),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, glowcast.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, glowcast.WithTimeout(cfg.Timeout.Duration()))
	}

	st, err := glowcast.NewStation(cfg.Name, cfg.LocationID, cfg.APIKey, opts...)
	if err != nil {
		return glowcast.Station{}, fmt.Errorf("station %q: %w", cfg.Name, err)
	}
	return st, nil
}

// BuildStrip creates a [glowcast.Strip] from the strip config.
//
// The caller owns the returned strip and is responsible for closing it
// after shutdown.
func BuildStrip(cfg StripConfig) (glowcast.Strip, error) {
	switch cfg.Driver {
	case "terminal":
		return glowcast.NewTerminalStrip(nil, cfg.Pixels)
	case "opc":
		return glowcast.NewOPCStrip(cfg.OPC.Addr, uint8(cfg.OPC.Channel), cfg.Pixels)
	case "memory":
		return glowcast.NewMemoryStrip(cfg.Pixels)
	default:
		return nil, fmt.Errorf("unknown strip driver %q", cfg.Driver)
	}
}

// BuildPalette creates a [glowcast.Palette] from the band configs.
// The config must already be validated via [Parse] or [Load].
func BuildPalette(bands []BandConfig) (glowcast.Palette, error) {
	if len(bands) == 0 {
		return glowcast.DefaultPalette, nil
	}

	floorRGB, err := ParseHexColor(bands[len(bands)-1].Color)
	if err != nil {
		return glowcast.Palette{}, err
	}
	floor := glowcast.Color{R: floorRGB[0], G: floorRGB[1], B: floorRGB[2]}

	gcBands := make([]glowcast.Band, 0, len(bands)-1)
	for _, b := range bands[:len(bands)-1] {
		rgb, err := ParseHexColor(b.Color)
		if err != nil {
			return glowcast.Palette{}, err
		}
		band := glowcast.Band{Color: glowcast.Color{R: rgb[0], G: rgb[1], B: rgb[2]}}
		if b.Above != nil {
			band.Min = *b.Above
			band.Exclusive = true
		} else {
			band.Min = *b.Min
		}
		gcBands = append(gcBands, band)
	}

	return glowcast.NewPalette(floor, gcBands...)
}

// BuildOptions converts a validated config into [glowcast.Option]
// values for [glowcast.New].
//
// The strip is passed in separately so that the caller retains
// ownership and can close it after [glowcast.Glowcast.Start] returns.
func BuildOptions(cfg *Config, ledStrip glowcast.Strip) ([]glowcast.Option, error) {
	st, err := BuildStation(cfg.Station)
	if err != nil {
		return nil, err
	}

	palette, err := BuildPalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}

	opts := []glowcast.Option{
		glowcast.WithStation(st),
		glowcast.WithStrip(ledStrip),
		glowcast.WithPalette(palette),
		glowcast.WithPollInterval(time.Duration(cfg.PollInterval)),
		glowcast.WithBrightness(uint8(cfg.Strip.Brightness)),
	}

	if cfg.Port != 0 {
		opts = append(opts, glowcast.WithPort(cfg.Port))
	}
	if cfg.Title != "" {
		opts = append(opts, glowcast.WithTitle(cfg.Title))
	}

	return opts, nil
}
